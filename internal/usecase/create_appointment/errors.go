package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound возвращается, когда выбранная услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotBookable возвращается, когда услуга неактивна или без длительности
	ErrServiceNotBookable = errors.New("create_appointment: service cannot be booked")

	// ErrClosedDay возвращается, когда день закрыт для записей
	ErrClosedDay = errors.New("create_appointment: day is closed")

	// ErrOutsideHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideHours = errors.New("create_appointment: slot is outside working hours")

	// ErrBreakTime возвращается, когда слот попадает на перерыв
	ErrBreakTime = errors.New("create_appointment: slot falls on a break")

	// ErrSlotConflict возвращается, когда слот пересекается с существующими записями
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with existing appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
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
