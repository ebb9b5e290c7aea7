package get_availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате диапазона
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrInvalidRange возвращается при перевернутом или слишком большом диапазоне
	ErrInvalidRange = errors.New("get_availability: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
