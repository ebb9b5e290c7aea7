package decide_reschedule

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("decide_reschedule: booking not found")

	// ErrNoPendingRequest возвращается, когда по заявке нет
	// нерассмотренного запроса на перенос
	ErrNoPendingRequest = errors.New("decide_reschedule: no pending reschedule request")

	// ErrSlotNotAvailable возвращается, когда целевой слот успели занять
	// после подачи запроса - запрос остается pending, исходная запись не меняется
	ErrSlotNotAvailable = errors.New("decide_reschedule: requested slot is no longer available")

	// ErrInvalidDecision возвращается при неизвестном решении
	ErrInvalidDecision = errors.New("decide_reschedule: invalid decision")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_reschedule: internal error")
)
