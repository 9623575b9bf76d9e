package reschedule_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому аккаунту
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrClosedDay возвращается, когда целевой день закрыт для записей
	ErrClosedDay = errors.New("reschedule_appointment: day is closed")

	// ErrOutsideHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideHours = errors.New("reschedule_appointment: slot is outside working hours")

	// ErrBreakTime возвращается, когда слот попадает на перерыв
	ErrBreakTime = errors.New("reschedule_appointment: slot falls on a break")

	// ErrSlotConflict возвращается, когда слот пересекается с существующими записями
	ErrSlotConflict = errors.New("reschedule_appointment: slot conflicts with existing appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

// ConflictError несёт список пересекающихся записей для ответа 409
type ConflictError struct {
	Conflicts []ConflictInfo
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting appointments", ErrSlotConflict, len(e.Conflicts))
}

// Unwrap позволяет errors.Is находить ErrSlotConflict
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
