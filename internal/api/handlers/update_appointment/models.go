package update_appointment

import (
	"time"

	updateAppointment "github.com/apptbook/appointment-service/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Отсутствующие поля остаются без изменений
type UpdateAppointmentRequest struct {
	CustomerName  *string  `json:"customerName,omitempty"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	StartTime     *string  `json:"startTime,omitempty"` // RFC3339
	ServiceIDs    *[]int64 `json:"serviceIds,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не занятости
	IgnoreWorkingHours bool `json:"ignoreWorkingHours,omitempty"`
}

// AppointmentServiceResponse услуга в составе записи
type AppointmentServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Color           *string `json:"color,omitempty"`
}

// UpdateAppointmentResponse HTTP response model
type UpdateAppointmentResponse struct {
	ID              int64                        `json:"id"`
	CustomerName    string                       `json:"customerName"`
	CustomerPhone   string                       `json:"customerPhone"`
	StartTime       string                       `json:"startTime"`
	EndTime         string                       `json:"endTime"`
	DurationMinutes int                          `json:"durationMinutes"`
	Status          string                       `json:"status"`
	IsManual        bool                         `json:"isManual"`
	Notes           *string                      `json:"notes,omitempty"`
	Services        []AppointmentServiceResponse `json:"services"`
	TotalPrice      float64                      `json:"totalPrice"`
	UpdatedAt       string                       `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком пересекающихся записей
type ConflictResponse struct {
	Error     string                             `json:"error"`
	Conflicts []updateAppointment.ConflictInfo `json:"conflicts"`
}

// ReasonResponse тело ответа 422 с кодом причины отказа
type ReasonResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		UserID:             userID,
		AppointmentID:      appointmentID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		ServiceIDs:         r.ServiceIDs,
		Status:             r.Status,
		Notes:              r.Notes,
		IgnoreWorkingHours: r.IgnoreWorkingHours,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *UpdateAppointmentResponse {
	services := make([]AppointmentServiceResponse, 0, len(resp.Services))
	for _, svc := range resp.Services {
		services = append(services, AppointmentServiceResponse{
			ServiceID:       svc.ServiceID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Color:           svc.Color,
		})
	}

	return &UpdateAppointmentResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		IsManual:        resp.IsManual,
		Notes:           resp.Notes,
		Services:        services,
		TotalPrice:      resp.TotalPrice,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
