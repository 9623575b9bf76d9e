package models

import (
	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/types"
)

// DayRuleRequest правило рабочих часов для одного дня недели
type DayRuleRequest struct {
	Day        string  `json:"day"`
	IsOpen     bool    `json:"isOpen"`
	StartTime  *string `json:"startTime,omitempty"`  // "09:00"
	EndTime    *string `json:"endTime,omitempty"`    // "18:00"
	BreakStart *string `json:"breakStart,omitempty"` // "12:00"
	BreakEnd   *string `json:"breakEnd,omitempty"`   // "13:00"
}

// PutWorkingHoursRequest запрос на полную замену рабочих часов аккаунта
type PutWorkingHoursRequest struct {
	UserID int64            `json:"userId"`
	Rules  []DayRuleRequest `json:"rules"`
}

// DayRuleResponse правило рабочих часов одного дня в ответе
type DayRuleResponse struct {
	Day        string  `json:"day"`
	IsOpen     bool    `json:"isOpen"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// WorkingHoursResponse ответ с рабочими часами аккаунта
type WorkingHoursResponse struct {
	Rules []DayRuleResponse `json:"rules"`
}

// ToDomainRule конвертирует запрос в domain модель
func (r *DayRuleRequest) ToDomainRule(userID int64) domain.WorkingHoursRule {
	rule := domain.WorkingHoursRule{
		UserID: userID,
		Day:    domain.Weekday(r.Day),
		IsOpen: r.IsOpen,
	}

	if r.StartTime != nil {
		rule.StartTime = types.TimeString(*r.StartTime)
	}
	if r.EndTime != nil {
		rule.EndTime = types.TimeString(*r.EndTime)
	}
	if r.BreakStart != nil {
		rule.BreakStart = types.TimeString(*r.BreakStart)
	}
	if r.BreakEnd != nil {
		rule.BreakEnd = types.TimeString(*r.BreakEnd)
	}

	return rule
}

// FromDomainRules конвертирует domain модели в DTO
func FromDomainRules(rules []domain.WorkingHoursRule) *WorkingHoursResponse {
	items := make([]DayRuleResponse, 0, len(rules))
	for _, rule := range rules {
		items = append(items, DayRuleResponse{
			Day:        string(rule.Day),
			IsOpen:     rule.IsOpen,
			StartTime:  timeStringPtr(rule.StartTime),
			EndTime:    timeStringPtr(rule.EndTime),
			BreakStart: timeStringPtr(rule.BreakStart),
			BreakEnd:   timeStringPtr(rule.BreakEnd),
		})
	}
	return &WorkingHoursResponse{Rules: items}
}

func timeStringPtr(ts types.TimeString) *string {
	if ts.IsZero() {
		return nil
	}
	s := string(ts)
	return &s
}
