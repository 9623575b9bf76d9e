package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/apptbook/appointment-service/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStartTime string `json:"newStartTime"` // RFC3339
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не занятости
	IgnoreWorkingHours bool `json:"ignoreWorkingHours,omitempty"`
}

// RescheduleAppointmentResponse HTTP response model
type RescheduleAppointmentResponse struct {
	ID              int64  `json:"id"`
	CustomerName    string `json:"customerName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком пересекающихся записей
type ConflictResponse struct {
	Error     string                                 `json:"error"`
	Conflicts []rescheduleAppointment.ConflictInfo `json:"conflicts"`
}

// ReasonResponse тело ответа 422 с кодом причины отказа
type ReasonResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	newStartTime, err := time.Parse(time.RFC3339, r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:             userID,
		AppointmentID:      appointmentID,
		NewStartTime:       newStartTime,
		IgnoreWorkingHours: r.IgnoreWorkingHours,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleAppointmentResponse {
	return &RescheduleAppointmentResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
