package domain

import (
	"time"

	"github.com/apptbook/appointment-service/pkg/types"
)

// Weekday день недели в формате настроек ("MONDAY".."SUNDAY")
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// AllWeekdays порядок дней недели в настройках (неделя начинается с понедельника)
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf конвертирует time.Weekday в Weekday настроек
func WeekdayOf(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Valid проверяет, что значение дня недели допустимо
func (w Weekday) Valid() bool {
	for _, d := range AllWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// WorkingHoursRule правило рабочих часов для одного дня недели
// Ровно одно правило на день недели на аккаунт
// Если IsOpen=false, остальные поля игнорируются при проверке доступности
type WorkingHoursRule struct {
	ID         int64
	UserID     int64
	Day        Weekday
	IsOpen     bool
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart types.TimeString
	BreakEnd   types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasBreak проверяет, задан ли у правила интервал перерыва
func (r *WorkingHoursRule) HasBreak() bool {
	return !r.BreakStart.IsZero() && !r.BreakEnd.IsZero() && r.BreakStart.IsBefore(r.BreakEnd)
}

// DefaultWorkingHours возвращает рабочую неделю по умолчанию для нового аккаунта
// Пн-Пт 09:00-18:00 с перерывом 12:00-13:00, Сб 09:00-14:00 с перерывом 12:00-12:30, Вс закрыто
func DefaultWorkingHours(userID int64) []WorkingHoursRule {
	rules := make([]WorkingHoursRule, 0, len(AllWeekdays))

	for _, day := range AllWeekdays {
		rule := WorkingHoursRule{
			UserID:     userID,
			Day:        day,
			IsOpen:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		}

		switch day {
		case Saturday:
			rule.EndTime = "14:00"
			rule.BreakEnd = "12:30"
		case Sunday:
			rule.IsOpen = false
		}

		rules = append(rules, rule)
	}

	return rules
}
