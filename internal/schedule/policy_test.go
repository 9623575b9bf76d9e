package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/types"
)

// monday фиксированный понедельник для тестов
var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

// sunday фиксированное воскресенье для тестов
var sunday = time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

func weekdayRules() []domain.WorkingHoursRule {
	return []domain.WorkingHoursRule{
		{
			Day:        domain.Monday,
			IsOpen:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		},
		{
			Day:    domain.Sunday,
			IsOpen: false,
		},
	}
}

func TestPolicy_IsDayOpen(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	assert.True(t, policy.IsDayOpen(monday))
	assert.False(t, policy.IsDayOpen(sunday))

	// Для дня без правила политика открыта (fail-open)
	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, policy.IsDayOpen(tuesday))
}

func TestPolicy_IsWithinWorkingWindow(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	cases := []struct {
		name     string
		time     types.TimeString
		expected bool
	}{
		{name: "before opening", time: "08:00", expected: false},
		{name: "at opening", time: "09:00", expected: true},
		{name: "mid day", time: "14:00", expected: true},
		{name: "at closing", time: "18:00", expected: true},
		{name: "after closing", time: "19:00", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy.IsWithinWorkingWindow(monday, tc.time))
		})
	}

	// Закрытый день - всегда вне рабочего окна
	assert.False(t, policy.IsWithinWorkingWindow(sunday, "10:00"))

	// День без правила не ограничен
	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, policy.IsWithinWorkingWindow(tuesday, "03:00"))
}

func TestPolicy_IsWithinBreak(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	assert.False(t, policy.IsWithinBreak(monday, "11:59"))
	assert.True(t, policy.IsWithinBreak(monday, "12:00"))
	assert.True(t, policy.IsWithinBreak(monday, "12:30"))
	assert.True(t, policy.IsWithinBreak(monday, "13:00"))
	assert.False(t, policy.IsWithinBreak(monday, "13:01"))
}

func TestPolicy_IsWithinBreak_NoBreakConfigured(t *testing.T) {
	policy := NewWorkingHoursPolicy([]domain.WorkingHoursRule{
		{Day: domain.Monday, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
	})

	assert.False(t, policy.IsWithinBreak(monday, "12:30"))
	assert.True(t, policy.IsSlotAvailable(monday, "12:30"))
}

func TestPolicy_IsSlotAvailable(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	assert.True(t, policy.IsSlotAvailable(monday, "10:00"))
	assert.False(t, policy.IsSlotAvailable(monday, "12:30")) // перерыв
	assert.False(t, policy.IsSlotAvailable(monday, "08:00")) // до открытия
	assert.False(t, policy.IsSlotAvailable(sunday, "10:00")) // закрытый день
}

func TestPolicy_IsIntervalWithinWorkingWindow(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	cases := []struct {
		name     string
		start    types.TimeString
		duration int
		expected bool
	}{
		{name: "fits inside window", start: "10:00", duration: 45, expected: true},
		{name: "ends exactly at closing", start: "17:30", duration: 30, expected: true},
		{name: "end past closing", start: "17:30", duration: 60, expected: false},
		{name: "start at closing", start: "18:00", duration: 15, expected: false},
		{name: "start before opening", start: "08:30", duration: 30, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy.IsIntervalWithinWorkingWindow(monday, tc.start, tc.duration))
		})
	}

	// Закрытый день и день без правила
	assert.False(t, policy.IsIntervalWithinWorkingWindow(sunday, "10:00", 30))
	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, policy.IsIntervalWithinWorkingWindow(tuesday, "03:00", 600))
}

func TestPolicy_IntervalOverlapsBreak(t *testing.T) {
	policy := NewWorkingHoursPolicy(weekdayRules())

	cases := []struct {
		name     string
		start    types.TimeString
		duration int
		expected bool
	}{
		{name: "straddles break start", start: "11:45", duration: 30, expected: true},
		{name: "inside break", start: "12:15", duration: 30, expected: true},
		{name: "straddles break end", start: "12:45", duration: 30, expected: true},
		{name: "covers whole break", start: "11:30", duration: 120, expected: true},
		{name: "ends at break start", start: "11:30", duration: 30, expected: false},
		{name: "starts at break end", start: "13:00", duration: 30, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy.IntervalOverlapsBreak(monday, tc.start, tc.duration))
		})
	}
}
