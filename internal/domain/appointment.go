package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a customer appointment in the calendar
type Appointment struct {
	ID            int64
	UserID        int64
	CustomerName  string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Status        AppointmentStatus
	// IsManual помечает запись, созданную в обход проверок рабочих часов
	IsManual bool
	Notes    *string

	// Привязанные услуги (в порядке выбора)
	Services []AppointmentService

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentService связь записи с услугой
// Хранит денормализованные данные услуги на момент привязки
type AppointmentService struct {
	ID            int64
	AppointmentID int64
	ServiceID     int64

	ServiceName     string
	DurationMinutes int
	Price           float64
	Color           *string
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// DurationMinutes returns the appointment length in minutes
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime).Minutes())
}

// TotalPrice returns the summed price of all attached services
func (a *Appointment) TotalPrice() float64 {
	var total float64
	for _, s := range a.Services {
		total += s.Price
	}
	return total
}

// SameDay returns true if the appointment starts on the given calendar day
func (a *Appointment) SameDay(date time.Time) bool {
	y1, m1, d1 := a.StartTime.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AppointmentsFilter фильтр для выборки записей аккаунта
type AppointmentsFilter struct {
	UserID          int64      // Обязательный параметр
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *AppointmentStatus
	IncludeInactive bool // Включать ли отменённые записи
}

// RecentCustomer пара имя+телефон недавнего клиента для автодополнения формы
type RecentCustomer struct {
	Name  string
	Phone string
}
