package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной или прошедшей дате записи
	ErrInvalidDate = errors.New("create_booking: invalid appointment date")

	// ErrNonBookableDay возвращается, когда дата приходится на выходной день
	ErrNonBookableDay = errors.New("create_booking: day is not bookable")

	// ErrInvalidSlot возвращается при индексе слота вне сетки
	ErrInvalidSlot = errors.New("create_booking: invalid slot index")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	// (проигрыш гонки конкурентному запросу либо административная блокировка)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда слот на сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: slot start time has already elapsed")

	// ErrMissingField возвращается при отсутствии обязательных контактных полей
	ErrMissingField = errors.New("create_booking: required field is missing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
