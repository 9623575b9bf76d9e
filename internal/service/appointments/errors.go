package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrServiceLinkNotFound возвращается, когда услуга не привязана к записи
	ErrServiceLinkNotFound = errors.New("service is not attached to appointment")

	// ErrAccessDenied возвращается, когда запись принадлежит другому аккаунту
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
