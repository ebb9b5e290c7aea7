package save_admin_blocks

import "errors"

var (
	// ErrEmptyPayload возвращается, когда в запросе нет ни одного дня
	ErrEmptyPayload = errors.New("save_admin_blocks: empty payload")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_admin_blocks: internal error")
)

// Причины отклонения дня (попадают в Summary, а не в ошибку вызова:
// батч состоит из независимых дневных замен и не откатывается целиком)
const (
	RejectInvalidDate    = "invalid_date"
	RejectInvalidSlot    = "invalid_slot"
	RejectNonBookableDay = "non_bookable_day"
	RejectPastDay        = "past_day"
	RejectInternal       = "internal_error"
)
