package resize_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("resize_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому аккаунту
	ErrAccessDenied = errors.New("resize_appointment: access denied")

	// ErrOutsideHours возвращается, когда новое окончание выходит за рабочие часы
	ErrOutsideHours = errors.New("resize_appointment: slot is outside working hours")

	// ErrBreakTime возвращается, когда удлинённый слот попадает на перерыв
	ErrBreakTime = errors.New("resize_appointment: slot falls on a break")

	// ErrClosedDay возвращается, когда день закрыт для записей
	ErrClosedDay = errors.New("resize_appointment: day is closed")

	// ErrSlotConflict возвращается, когда удлинённый слот пересекается с другими записями
	ErrSlotConflict = errors.New("resize_appointment: slot conflicts with existing appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resize_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resize_appointment: internal error")
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
