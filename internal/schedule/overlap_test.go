package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
)

// appt вспомогательный конструктор записи на тестовый понедельник
func appt(id int64, start, end string) domain.Appointment {
	return domain.Appointment{
		ID:        id,
		Status:    domain.StatusConfirmed,
		StartTime: at(monday, start),
		EndTime:   at(monday, end),
	}
}

// at собирает time.Time из даты дня и времени "HH:MM"
func at(day time.Time, hhmm string) time.Time {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}

func TestFindConflicts_Overlapping(t *testing.T) {
	existing := []domain.Appointment{appt(1, "10:00", "10:45")}

	conflicts := FindConflicts(at(monday, "10:30"), at(monday, "11:00"), existing, 0)

	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(1), conflicts[0].ID)
}

func TestFindConflicts_Symmetric(t *testing.T) {
	// Пересечение должно обнаруживаться в обе стороны:
	// A против B и B против A дают одинаковый вердикт
	a := appt(1, "10:00", "11:00")
	b := appt(2, "10:30", "11:30")

	assert.Len(t, FindConflicts(a.StartTime, a.EndTime, []domain.Appointment{b}, 0), 1)
	assert.Len(t, FindConflicts(b.StartTime, b.EndTime, []domain.Appointment{a}, 0), 1)
}

func TestFindConflicts_AdjacencyIsNotConflict(t *testing.T) {
	existing := []domain.Appointment{appt(1, "09:30", "10:00")}

	// Запись сразу после существующей - допустима
	assert.Empty(t, FindConflicts(at(monday, "10:00"), at(monday, "10:30"), existing, 0))

	// И сразу до неё тоже
	assert.Empty(t, FindConflicts(at(monday, "09:00"), at(monday, "09:30"), existing, 0))
}

func TestFindConflicts_ExcludeID(t *testing.T) {
	existing := []domain.Appointment{appt(7, "10:00", "10:45")}

	// Перенос записи на её же слот не должен конфликтовать с самой собой
	assert.Empty(t, FindConflicts(at(monday, "10:00"), at(monday, "10:45"), existing, 7))
}

func TestFindConflicts_SkipsCancelled(t *testing.T) {
	cancelled := appt(1, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled

	assert.Empty(t, FindConflicts(at(monday, "10:00"), at(monday, "11:00"), []domain.Appointment{cancelled}, 0))
}

func TestFindConflicts_OtherDayIgnored(t *testing.T) {
	otherDay := domain.Appointment{
		ID:        1,
		Status:    domain.StatusConfirmed,
		StartTime: at(monday.AddDate(0, 0, 1), "10:00"),
		EndTime:   at(monday.AddDate(0, 0, 1), "11:00"),
	}

	assert.Empty(t, FindConflicts(at(monday, "10:00"), at(monday, "11:00"), []domain.Appointment{otherDay}, 0))
}

func TestFindConflicts_ReturnsAllConflicts(t *testing.T) {
	existing := []domain.Appointment{
		appt(1, "10:00", "10:30"),
		appt(2, "10:30", "11:00"),
		appt(3, "12:00", "13:00"),
	}

	conflicts := FindConflicts(at(monday, "10:15"), at(monday, "10:45"), existing, 0)

	require.Len(t, conflicts, 2)
	assert.Equal(t, int64(1), conflicts[0].ID)
	assert.Equal(t, int64(2), conflicts[1].ID)
}
