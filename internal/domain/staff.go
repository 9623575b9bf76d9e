package domain

import "time"

// Staff represents a staff member of the business account
type Staff struct {
	ID          int64
	UserID      int64
	Name        string
	Email       *string
	Phone       *string
	Title       string
	Specialties []string
	IsActive    bool
	ImageURL    *string
	Bio         *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
