package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoPendingRequest возвращается, когда по заявке нет
	// нерассмотренного запроса на перенос
	ErrNoPendingRequest = errors.New("no pending reschedule request")

	// ErrCannotDelete возвращается при попытке удалить незавершённую заявку
	ErrCannotDelete = errors.New("booking cannot be deleted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
