package request_reschedule

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("request_reschedule: booking not found")

	// ErrAccessDenied возвращается при несовпадении manage-токена
	ErrAccessDenied = errors.New("request_reschedule: invalid manage token")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("request_reschedule: invalid requested date")

	// ErrNonBookableDay возвращается, когда дата приходится на выходной день
	ErrNonBookableDay = errors.New("request_reschedule: requested day is not bookable")

	// ErrInvalidSlot возвращается при индексе слота вне сетки
	ErrInvalidSlot = errors.New("request_reschedule: invalid slot index")

	// ErrSlotNotAvailable возвращается, когда целевой слот занят
	ErrSlotNotAvailable = errors.New("request_reschedule: requested slot is not available")

	// ErrTooLateToBook возвращается, когда целевой слот на сегодня уже начался
	ErrTooLateToBook = errors.New("request_reschedule: slot start time has already elapsed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_reschedule: internal error")
)
