package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
// Контактные поля проверяются валидатором по тегам структуры,
// дата и слот - доменными правилами
func validateRequest(req *Request, now time.Time) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			if first.Tag() == "required" {
				return fmt.Errorf("%w: %s", ErrMissingField, first.Field())
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, first.Field())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := req.Date.Validate(); err != nil {
		return ErrInvalidDate
	}

	if !req.Slot.Valid() {
		return fmt.Errorf("%w: slot index %d is out of range [0, %d)", ErrInvalidSlot, req.Slot, domain.SlotCount)
	}

	if req.Date.IsPast(now) {
		return ErrInvalidDate
	}

	if !req.Date.IsBookable() {
		return ErrNonBookableDay
	}

	// Запись на сегодня возможна только в еще не начавшиеся окна
	if req.Date.IsToday(now) && req.Slot.HasStarted(req.Date, now) {
		return ErrTooLateToBook
	}

	return nil
}
