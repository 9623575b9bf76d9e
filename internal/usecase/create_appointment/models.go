package create_appointment

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	UserID        int64     // ID аккаунта
	CustomerName  string    // Имя клиента
	CustomerPhone string    // Телефон клиента
	StartTime     time.Time // Время начала записи
	ServiceIDs    []int64   // Выбранные услуги (минимум одна)
	// IsManual ручная запись: размещается даже в закрытые часы и поверх занятых слотов
	IsManual bool
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не проверку пересечений
	IgnoreWorkingHours bool
	Notes              *string // Дополнительные заметки (опционально)
}

// ConflictInfo краткие данные пересекающейся записи
type ConflictInfo struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customerName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	CustomerName    string    // Имя клиента
	CustomerPhone   string    // Телефон клиента
	StartTime       time.Time // Время начала
	EndTime         time.Time // Время окончания
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус записи
	IsManual        bool      // Признак ручной записи
	Notes           *string   // Заметки

	// Привязанные услуги с денормализованными данными
	Services   []ServiceInfo
	TotalPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
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
		CreatedAt:       a.CreatedAt,
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
