package resize_appointment

import (
	"time"

	resizeAppointment "github.com/apptbook/appointment-service/internal/usecase/resize_appointment"
)

// ResizeAppointmentRequest HTTP request model
type ResizeAppointmentRequest struct {
	// NewDurationMinutes новая длительность; меньше 15 минут поднимается до минимума
	NewDurationMinutes int `json:"newDurationMinutes"`
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не занятости
	IgnoreWorkingHours bool `json:"ignoreWorkingHours,omitempty"`
}

// ResizeAppointmentResponse HTTP response model
type ResizeAppointmentResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	UpdatedAt       string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком пересекающихся записей
type ConflictResponse struct {
	Error     string                             `json:"error"`
	Conflicts []resizeAppointment.ConflictInfo `json:"conflicts"`
}

// ReasonResponse тело ответа 422 с кодом причины отказа
type ReasonResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResizeAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) *resizeAppointment.Request {
	return &resizeAppointment.Request{
		UserID:             userID,
		AppointmentID:      appointmentID,
		NewDurationMinutes: r.NewDurationMinutes,
		IgnoreWorkingHours: r.IgnoreWorkingHours,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resizeAppointment.Response) *ResizeAppointmentResponse {
	return &ResizeAppointmentResponse{
		ID:              resp.ID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
