package resize_appointment

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модель запроса на изменение длительности записи
type Request struct {
	UserID        int64 // ID аккаунта
	AppointmentID int64 // ID записи
	// NewDurationMinutes новая длительность; значения меньше минимума поднимаются до 15 минут
	NewDurationMinutes int
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

// Response модель ответа с изменённой записью
type Response struct {
	ID              int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	UpdatedAt       time.Time
}

// toResponse конвертирует domain модель в ответ usecase
func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes(),
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
