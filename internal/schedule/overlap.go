package schedule

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// FindConflicts возвращает все записи, чей интервал [start, end)
// реально пересекается с интервалом кандидата
//
// Пересечение определяется строгими неравенствами: интервалы, которые
// только граничат (конец одного равен началу другого), пересечением
// НЕ считаются - записи "впритык" допустимы
//
// Примеры:
// - Кандидат 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Кандидат 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Кандидат 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
//
// Учитываются только активные записи того же календарного дня;
// записи через полночь вне рассмотрения
//
// excludeID исключает собственный интервал записи при переносе/изменении
// длительности (0 - не исключать ничего)
func FindConflicts(candidateStart, candidateEnd time.Time, existing []domain.Appointment, excludeID int64) []domain.Appointment {
	conflicts := make([]domain.Appointment, 0)

	for _, appt := range existing {
		if excludeID != 0 && appt.ID == excludeID {
			continue
		}

		// Отменённые записи слот не занимают
		if !appt.IsActive() {
			continue
		}

		// Сравниваем только записи того же календарного дня
		if !appt.SameDay(candidateStart) {
			continue
		}

		if appt.StartTime.Before(candidateEnd) && appt.EndTime.After(candidateStart) {
			conflicts = append(conflicts, appt)
		}
	}

	return conflicts
}
