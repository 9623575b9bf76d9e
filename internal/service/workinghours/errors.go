package workinghours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDay возвращается при неизвестном или продублированном дне недели
	ErrInvalidDay = errors.New("invalid day of week")

	// ErrInvalidTimeRange возвращается, когда окно работы задано некорректно
	ErrInvalidTimeRange = errors.New("invalid working time range")

	// ErrInvalidBreak возвращается, когда перерыв выходит за рамки рабочего окна
	ErrInvalidBreak = errors.New("break must fit inside working hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
