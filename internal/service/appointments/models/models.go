package models

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей аккаунта
type ListAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		UserID:          r.UserID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// AppointmentServiceResponse привязанная к записи услуга
type AppointmentServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Color           *string `json:"color,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64                        `json:"id"`
	CustomerName    string                       `json:"customerName"`
	CustomerPhone   string                       `json:"customerPhone"`
	StartTime       time.Time                    `json:"startTime"`
	EndTime         time.Time                    `json:"endTime"`
	DurationMinutes int                          `json:"durationMinutes"`
	Status          string                       `json:"status"`
	IsManual        bool                         `json:"isManual"`
	Notes           *string                      `json:"notes,omitempty"`
	Services        []AppointmentServiceResponse `json:"services"`
	TotalPrice      float64                      `json:"totalPrice"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// RecentCustomerResponse клиент для автодополнения формы
type RecentCustomerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RecentCustomersResponse ответ со списком недавних клиентов
type RecentCustomersResponse struct {
	Customers []RecentCustomerResponse `json:"customers"`
}

// AppointmentDatesResponse даты, на которые есть записи
type AppointmentDatesResponse struct {
	Dates []string `json:"dates"` // "2025-10-15"
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := make([]AppointmentServiceResponse, 0, len(a.Services))
	for _, svc := range a.Services {
		services = append(services, AppointmentServiceResponse{
			ServiceID:       svc.ServiceID,
			Name:            svc.ServiceName,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Color:           svc.Color,
		})
	}

	return &AppointmentResponse{
		ID:              a.ID,
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		IsManual:        a.IsManual,
		Notes:           a.Notes,
		Services:        services,
		TotalPrice:      a.TotalPrice(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: items}
}

// FromDomainRecentCustomers конвертирует список клиентов в DTO
func FromDomainRecentCustomers(customers []domain.RecentCustomer) *RecentCustomersResponse {
	items := make([]RecentCustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, RecentCustomerResponse{Name: c.Name, Phone: c.Phone})
	}
	return &RecentCustomersResponse{Customers: items}
}

// FromDomainDates конвертирует список дат в DTO
func FromDomainDates(dates []time.Time) *AppointmentDatesResponse {
	items := make([]string, 0, len(dates))
	for _, d := range dates {
		items = append(items, d.Format(domain.DateFormat))
	}
	return &AppointmentDatesResponse{Dates: items}
}

// ToDomainStatus валидирует и конвертирует статус из строки
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
