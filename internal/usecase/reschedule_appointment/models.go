package reschedule_appointment

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	UserID        int64     // ID аккаунта
	AppointmentID int64     // ID переносимой записи
	NewStartTime  time.Time // Новое время начала; длительность сохраняется
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не проверку пересечений
	IgnoreWorkingHours bool
}

// ConflictInfo краткие данные пересекающейся записи
type ConflictInfo struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64
	CustomerName    string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	UpdatedAt       time.Time
}

// toResponse конвертирует domain модель в ответ usecase
func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		CustomerName:    a.CustomerName,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		UpdatedAt:       a.UpdatedAt,
	}
}

// toConflicts конвертирует пересекающиеся записи в краткую форму
func toConflicts(appointments []domain.Appointment) []ConflictInfo {
	conflicts := make([]ConflictInfo, 0, len(appointments))
	for _, a := range appointments {
		conflicts = append(conflicts, ConflictInfo{
			ID:           a.ID,
			CustomerName: a.CustomerName,
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
		})
	}
	return conflicts
}
