package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptbook/appointment-service/internal/domain"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(NewWorkingHoursPolicy(weekdayRules()))
}

func TestCanPlace_OK(t *testing.T) {
	ev := newTestEvaluator()

	verdict := ev.CanPlace(at(monday, "14:00"), 30, nil, PlacementOptions{})

	assert.True(t, verdict.OK)
	assert.Equal(t, ReasonNone, verdict.Reason)
}

func TestCanPlace_ReasonOrdering(t *testing.T) {
	ev := newTestEvaluator()

	cases := []struct {
		name     string
		start    string
		day      string
		expected Reason
	}{
		{name: "closed day", day: "sunday", start: "10:00", expected: ReasonClosedDay},
		{name: "outside hours", day: "monday", start: "08:00", expected: ReasonOutsideHours},
		{name: "break time", day: "monday", start: "12:30", expected: ReasonBreakTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := monday
			if tc.day == "sunday" {
				day = sunday
			}

			verdict := ev.CanPlace(at(day, tc.start), 30, nil, PlacementOptions{})

			assert.False(t, verdict.OK)
			assert.Equal(t, tc.expected, verdict.Reason)
		})
	}
}

func TestCanPlace_IntervalAgainstWindow(t *testing.T) {
	ev := newTestEvaluator()

	cases := []struct {
		name     string
		start    string
		duration int
		expected Reason
	}{
		{name: "end past closing", start: "17:30", duration: 60, expected: ReasonOutsideHours},
		{name: "start at closing", start: "18:00", duration: 30, expected: ReasonOutsideHours},
		{name: "end exactly at closing", start: "17:30", duration: 30, expected: ReasonNone},
		{name: "straddles break start", start: "11:45", duration: 30, expected: ReasonBreakTime},
		{name: "straddles break end", start: "12:45", duration: 30, expected: ReasonBreakTime},
		{name: "covers whole break", start: "11:30", duration: 120, expected: ReasonBreakTime},
		{name: "ends at break start", start: "11:30", duration: 30, expected: ReasonNone},
		{name: "starts at break end", start: "13:00", duration: 30, expected: ReasonNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := ev.CanPlace(at(monday, tc.start), tc.duration, nil, PlacementOptions{})

			assert.Equal(t, tc.expected, verdict.Reason)
			assert.Equal(t, tc.expected == ReasonNone, verdict.OK)
		})
	}
}

func TestCanPlace_ClosedDayWinsOverOverlap(t *testing.T) {
	ev := newTestEvaluator()

	existing := []domain.Appointment{
		{
			ID:        1,
			Status:    domain.StatusConfirmed,
			StartTime: at(sunday, "10:00"),
			EndTime:   at(sunday, "11:00"),
		},
	}

	// Закрытый день сообщается независимо от состояния пересечений
	verdict := ev.CanPlace(at(sunday, "10:00"), 30, existing, PlacementOptions{})

	assert.False(t, verdict.OK)
	assert.Equal(t, ReasonClosedDay, verdict.Reason)
	assert.Empty(t, verdict.Conflicts)
}

func TestCanPlace_Overlap(t *testing.T) {
	ev := newTestEvaluator()

	existing := []domain.Appointment{appt(1, "10:00", "10:45")}

	verdict := ev.CanPlace(at(monday, "10:30"), 30, existing, PlacementOptions{})

	assert.False(t, verdict.OK)
	assert.Equal(t, ReasonOverlap, verdict.Reason)
	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, int64(1), verdict.Conflicts[0].ID)
}

func TestCanPlace_Adjacency(t *testing.T) {
	ev := newTestEvaluator()

	existing := []domain.Appointment{appt(1, "10:00", "10:45")}

	// Запись "впритык" после существующей допустима
	verdict := ev.CanPlace(at(monday, "10:45"), 30, existing, PlacementOptions{})

	assert.True(t, verdict.OK)
}

func TestCanPlace_IgnoreWorkingHours(t *testing.T) {
	ev := newTestEvaluator()

	opts := PlacementOptions{IgnoreWorkingHours: true}

	// Закрытый день, до открытия и перерыв игнорируются
	assert.True(t, ev.CanPlace(at(sunday, "10:00"), 30, nil, opts).OK)
	assert.True(t, ev.CanPlace(at(monday, "08:00"), 30, nil, opts).OK)
	assert.True(t, ev.CanPlace(at(monday, "12:30"), 30, nil, opts).OK)

	// Но пересечения по-прежнему проверяются
	existing := []domain.Appointment{appt(1, "10:00", "10:45")}
	verdict := ev.CanPlace(at(monday, "10:30"), 30, existing, opts)

	assert.False(t, verdict.OK)
	assert.Equal(t, ReasonOverlap, verdict.Reason)
}

func TestCanPlace_ManualOverride(t *testing.T) {
	ev := newTestEvaluator()

	// Ручная запись обходит и рабочие часы, и пересечения
	existing := []domain.Appointment{appt(1, "10:00", "10:45")}
	opts := PlacementOptions{IgnoreWorkingHours: true, IgnoreConflicts: true}

	assert.True(t, ev.CanPlace(at(sunday, "10:00"), 30, nil, opts).OK)
	assert.True(t, ev.CanPlace(at(monday, "10:30"), 30, existing, opts).OK)
}

func TestCanPlace_SelfExclusion(t *testing.T) {
	ev := newTestEvaluator()

	existing := []domain.Appointment{appt(5, "10:00", "10:45")}

	// Перенос записи на её текущий слот не конфликтует сам с собой
	verdict := ev.CanPlace(at(monday, "10:00"), 45, existing, PlacementOptions{ExcludeID: 5})

	assert.True(t, verdict.OK)
}

func TestCanPlace_EndToEndScenario(t *testing.T) {
	// Аккаунт: понедельник 09:00-17:00 без перерыва;
	// существующая запись 10:00-10:45 (услуга 45 минут)
	policy := NewWorkingHoursPolicy([]domain.WorkingHoursRule{
		{Day: domain.Monday, IsOpen: true, StartTime: "09:00", EndTime: "17:00"},
	})
	ev := NewEvaluator(policy)

	existing := []domain.Appointment{appt(1, "10:00", "10:45")}

	// Новая запись в 10:30 на 30 минут → OVERLAP со списком конфликтов
	verdict := ev.CanPlace(at(monday, "10:30"), 30, existing, PlacementOptions{})
	assert.False(t, verdict.OK)
	assert.Equal(t, ReasonOverlap, verdict.Reason)
	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, int64(1), verdict.Conflicts[0].ID)

	// Тот же запрос в 10:45 → успех (граничные интервалы допустимы)
	assert.True(t, ev.CanPlace(at(monday, "10:45"), 30, existing, PlacementOptions{}).OK)
}
