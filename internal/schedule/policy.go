package schedule

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/types"
)

// WorkingHoursPolicy отвечает на вопросы о доступности времени
// по недельным правилам рабочих часов аккаунта
//
// Если правило для дня недели отсутствует, политика считает день открытым
// без ограничений (fail-open): отсутствие настроек не должно блокировать
// запись клиентов
type WorkingHoursPolicy struct {
	rules map[domain.Weekday]domain.WorkingHoursRule
}

// NewWorkingHoursPolicy создает политику из набора правил (одно на день недели)
func NewWorkingHoursPolicy(rules []domain.WorkingHoursRule) *WorkingHoursPolicy {
	byDay := make(map[domain.Weekday]domain.WorkingHoursRule, len(rules))
	for _, r := range rules {
		byDay[r.Day] = r
	}
	return &WorkingHoursPolicy{rules: byDay}
}

// RuleFor возвращает правило для дня недели указанной даты
func (p *WorkingHoursPolicy) RuleFor(date time.Time) (domain.WorkingHoursRule, bool) {
	rule, ok := p.rules[domain.WeekdayOf(date)]
	return rule, ok
}

// IsDayOpen возвращает true, если день открыт для записи
func (p *WorkingHoursPolicy) IsDayOpen(date time.Time) bool {
	rule, ok := p.RuleFor(date)
	if !ok {
		return true
	}
	return rule.IsOpen
}

// IsWithinWorkingWindow проверяет, что время попадает в рабочее окно дня
// Границы окна включительны
func (p *WorkingHoursPolicy) IsWithinWorkingWindow(date time.Time, t types.TimeString) bool {
	rule, ok := p.RuleFor(date)
	if !ok {
		return true
	}
	if !rule.IsOpen {
		return false
	}
	return !t.IsBefore(rule.StartTime) && !t.IsAfter(rule.EndTime)
}

// IsWithinBreak проверяет, что время попадает в окно перерыва
// Для закрытого дня и дня без перерыва всегда false
func (p *WorkingHoursPolicy) IsWithinBreak(date time.Time, t types.TimeString) bool {
	rule, ok := p.RuleFor(date)
	if !ok || !rule.IsOpen || !rule.HasBreak() {
		return false
	}
	return !t.IsBefore(rule.BreakStart) && !t.IsAfter(rule.BreakEnd)
}

// IsSlotAvailable комбинированная проверка:
// день открыт, время в рабочем окне и не в перерыве
func (p *WorkingHoursPolicy) IsSlotAvailable(date time.Time, t types.TimeString) bool {
	return p.IsDayOpen(date) && p.IsWithinWorkingWindow(date, t) && !p.IsWithinBreak(date, t)
}

// IsIntervalWithinWorkingWindow проверяет, что интервал
// [start, start+durationMinutes) целиком лежит в рабочем окне дня.
// Интервал, упирающийся концом ровно в закрытие, допустим
// (полуоткрытые интервалы), а начало ровно в закрытие - уже нет
func (p *WorkingHoursPolicy) IsIntervalWithinWorkingWindow(date time.Time, start types.TimeString, durationMinutes int) bool {
	rule, ok := p.RuleFor(date)
	if !ok {
		return true
	}
	if !rule.IsOpen {
		return false
	}

	startMin, errStart := start.Minutes()
	windowStart, errA := rule.StartTime.Minutes()
	windowEnd, errB := rule.EndTime.Minutes()
	if errStart != nil || errA != nil || errB != nil {
		return true
	}

	endMin := startMin + durationMinutes
	return startMin >= windowStart && endMin <= windowEnd
}

// IntervalOverlapsBreak проверяет, что интервал [start, start+durationMinutes)
// пересекается с окном перерыва. Пересечение полуоткрытое: интервал,
// граничащий с перерывом, перерыв не задевает
// Для закрытого дня и дня без перерыва всегда false
func (p *WorkingHoursPolicy) IntervalOverlapsBreak(date time.Time, start types.TimeString, durationMinutes int) bool {
	rule, ok := p.RuleFor(date)
	if !ok || !rule.IsOpen || !rule.HasBreak() {
		return false
	}

	startMin, errStart := start.Minutes()
	breakStart, errA := rule.BreakStart.Minutes()
	breakEnd, errB := rule.BreakEnd.Minutes()
	if errStart != nil || errA != nil || errB != nil {
		return false
	}

	endMin := startMin + durationMinutes
	return startMin < breakEnd && endMin > breakStart
}
