package domain

import "time"

// Service represents a bookable service offered by the business account
// Duration feeds the end-time computation of appointments
type Service struct {
	ID              int64
	UserID          int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Color           *string
	IsActive        bool
	Category        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanBeBooked returns true if the service can be attached to new appointments
func (s *Service) CanBeBooked() bool {
	return s.IsActive && s.DurationMinutes > 0
}

// TotalDurationMinutes суммирует длительность выбранных услуг
// Длительность записи с несколькими услугами равна сумме длительностей
func TotalDurationMinutes(services []*Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}
