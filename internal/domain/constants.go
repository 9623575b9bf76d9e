package domain

// Business validation constants
const (
	// MinAppointmentDurationMinutes минимальная длительность записи
	// Resize ниже этого значения поднимается до минимума
	MinAppointmentDurationMinutes = 15

	// QuarterMinutes шаг календарной сетки (четверть часа)
	QuarterMinutes = 15

	// QuartersPerHour количество четвертей в ячейке часа
	QuartersPerHour = 4

	// SnapThreshold доля четверти часа, в пределах которой позиция
	// перетаскивания притягивается к ближайшей границе
	SnapThreshold = 0.35

	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 30
	MaxNotesLength         = 500
	MaxServiceNameLength   = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// ValidStatus проверяет, что строка - допустимый статус записи
func ValidStatus(s AppointmentStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
