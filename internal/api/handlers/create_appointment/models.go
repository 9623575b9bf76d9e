package create_appointment

import (
	"time"

	createAppointment "github.com/apptbook/appointment-service/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	StartTime     string  `json:"startTime"` // RFC3339
	ServiceIDs    []int64 `json:"serviceIds"`
	IsManual      bool    `json:"isManual,omitempty"`
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не занятости
	IgnoreWorkingHours bool    `json:"ignoreWorkingHours,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

// AppointmentServiceResponse услуга в составе записи
type AppointmentServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Color           *string `json:"color,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
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
	CreatedAt       string                       `json:"createdAt"`
	UpdatedAt       string                       `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком пересекающихся записей
type ConflictResponse struct {
	Error     string                             `json:"error"`
	Conflicts []createAppointment.ConflictInfo `json:"conflicts"`
}

// ReasonResponse тело ответа 422 с кодом причины отказа
type ReasonResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:             userID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		StartTime:          startTime,
		ServiceIDs:         r.ServiceIDs,
		IsManual:           r.IsManual,
		IgnoreWorkingHours: r.IgnoreWorkingHours,
		Notes:              r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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

	return &AppointmentResponse{
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
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
