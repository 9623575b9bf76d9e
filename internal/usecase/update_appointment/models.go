package update_appointment

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модель запроса на редактирование записи
// Nil-поля остаются без изменений
type Request struct {
	UserID        int64
	AppointmentID int64

	CustomerName  *string
	CustomerPhone *string
	StartTime     *time.Time // Новое время начала (опционально)
	ServiceIDs    *[]int64   // Новый набор услуг; длительность пересчитывается
	Status        *string
	Notes         *string
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

// Response модель ответа с обновлённой записью
type Response struct {
	ID              int64
	CustomerName    string
	CustomerPhone   string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	IsManual        bool
	Notes           *string
	Services        []ServiceInfo
	TotalPrice      float64
	UpdatedAt       time.Time
}

// ServiceInfo услуга в составе ответа
type ServiceInfo struct {
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
	Color           *string
}

// toResponse конвертирует domain модель в ответ usecase
func toResponse(a *domain.Appointment) *Response {
	services := make([]ServiceInfo, 0, len(a.Services))
	for _, svc := range a.Services {
		services = append(services, ServiceInfo{
			ServiceID:       svc.ServiceID,
			Name:            svc.ServiceName,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Color:           svc.Color,
		})
	}

	return &Response{
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
