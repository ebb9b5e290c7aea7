package occupancy

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате в запросе
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
