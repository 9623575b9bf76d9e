package models

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// CreateStaffRequest запрос на создание сотрудника
type CreateStaffRequest struct {
	UserID      int64    `json:"userId"`
	Name        string   `json:"name"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Title       string   `json:"title"`
	Specialties []string `json:"specialties,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
}

// ToDomainStaff конвертирует запрос в domain модель
// Новый сотрудник создаётся активным
func (r *CreateStaffRequest) ToDomainStaff() *domain.Staff {
	specialties := r.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return &domain.Staff{
		UserID:      r.UserID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Title:       r.Title,
		Specialties: specialties,
		IsActive:    true,
		ImageURL:    r.ImageURL,
		Bio:         r.Bio,
	}
}

// UpdateStaffRequest запрос на обновление сотрудника
// Nil-поля остаются без изменений
type UpdateStaffRequest struct {
	UserID      int64     `json:"userId"`
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Specialties *[]string `json:"specialties,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
}

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Title       string    `json:"title"`
	Specialties []string  `json:"specialties"`
	IsActive    bool      `json:"isActive"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(m *domain.Staff) *StaffResponse {
	if m == nil {
		return nil
	}

	return &StaffResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Title:       m.Title,
		Specialties: m.Specialties,
		IsActive:    m.IsActive,
		ImageURL:    m.ImageURL,
		Bio:         m.Bio,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(members []*domain.Staff) *StaffListResponse {
	items := make([]StaffResponse, 0, len(members))
	for _, m := range members {
		items = append(items, *FromDomainStaff(m))
	}
	return &StaffListResponse{Staff: items}
}
