package models

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64   `json:"userId"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Color           *string `json:"color,omitempty"`
	Category        *string `json:"category,omitempty"`
}

// ToDomainService конвертирует запрос в domain модель
// Новая услуга создаётся активной
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		UserID:          r.UserID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Color:           r.Color,
		IsActive:        true,
		Category:        r.Category,
	}
}

// UpdateServiceRequest запрос на обновление услуги
// Nil-поля остаются без изменений
type UpdateServiceRequest struct {
	UserID          int64    `json:"userId"`
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Color           *string  `json:"color,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
	Category        *string  `json:"category,omitempty"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Color           *string   `json:"color,omitempty"`
	IsActive        bool      `json:"isActive"`
	Category        *string   `json:"category,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Color:           s.Color,
		IsActive:        s.IsActive,
		Category:        s.Category,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	items := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: items}
}
