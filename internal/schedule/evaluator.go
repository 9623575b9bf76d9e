package schedule

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/types"
)

// Reason причина отказа в размещении записи
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonClosedDay    Reason = "CLOSED_DAY"
	ReasonOutsideHours Reason = "OUTSIDE_HOURS"
	ReasonBreakTime    Reason = "BREAK_TIME"
	ReasonOverlap      Reason = "OVERLAP"
)

// Verdict результат проверки размещения
// При Reason=OVERLAP Conflicts содержит полный список пересекающихся
// записей, чтобы вызывающая сторона могла показать их все
type Verdict struct {
	OK        bool
	Reason    Reason
	Conflicts []domain.Appointment
}

// PlacementOptions опции проверки размещения
type PlacementOptions struct {
	// IgnoreWorkingHours пропускает проверки рабочих часов целиком
	// (пользовательский переключатель "игнорировать рабочие часы");
	// проверка пересечений при этом выполняется
	IgnoreWorkingHours bool

	// IgnoreConflicts дополнительно пропускает проверку пересечений
	// Используется для ручных записей (isManual) - сознательный обход,
	// а не дыра в проверке
	IgnoreConflicts bool

	// ExcludeID исключает собственный интервал записи при переносе/resize
	ExcludeID int64
}

// Evaluator решает, можно ли разместить запись длительностью D
// в момент T: комбинирует политику рабочих часов и детектор пересечений
type Evaluator struct {
	policy *WorkingHoursPolicy
}

// NewEvaluator создает evaluator поверх политики рабочих часов
func NewEvaluator(policy *WorkingHoursPolicy) *Evaluator {
	return &Evaluator{policy: policy}
}

// CanPlace проверяет, можно ли разместить запись с началом start
// и длительностью durationMinutes среди существующих записей
//
// Против рабочих часов проверяется весь интервал [start, start+duration):
// конец не позже закрытия, пересечение с окном перерыва недопустимо
//
// Порядок проверок фиксирован, первая провалившаяся определяет причину:
// закрытый день → вне рабочих часов → перерыв → пересечение.
// Порядок важен для сообщений пользователю: "день закрыт" приоритетнее
// "вне рабочих часов", а то - приоритетнее "перерыв"
func (e *Evaluator) CanPlace(start time.Time, durationMinutes int, existing []domain.Appointment, opts PlacementOptions) Verdict {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	if !opts.IgnoreWorkingHours {
		startTime := types.NewTimeString(start)

		if !e.policy.IsDayOpen(start) {
			return Verdict{Reason: ReasonClosedDay}
		}
		if !e.policy.IsIntervalWithinWorkingWindow(start, startTime, durationMinutes) {
			return Verdict{Reason: ReasonOutsideHours}
		}
		if e.policy.IntervalOverlapsBreak(start, startTime, durationMinutes) {
			return Verdict{Reason: ReasonBreakTime}
		}
	}

	if !opts.IgnoreConflicts {
		conflicts := FindConflicts(start, end, existing, opts.ExcludeID)
		if len(conflicts) > 0 {
			return Verdict{Reason: ReasonOverlap, Conflicts: conflicts}
		}
	}

	return Verdict{OK: true}
}
