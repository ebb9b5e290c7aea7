package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingField       = "не заполнено обязательное поле"
	msgInvalidInput       = "некорректные данные заявки"
	msgInvalidDate        = "некорректная дата записи"
	msgNonBookableDay     = "запись на выходной день недоступна"
	msgInvalidSlot        = "некорректный индекс слота"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgTooLateToBook      = "слот уже начался, запись невозможна"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingField):
			h.logger.Warn("POST /bookings - Missing required field: %v", err)
			handlers.RespondBadRequest(w, msgMissingField)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrNonBookableDay):
			h.logger.Warn("POST /bookings - Non-bookable day: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgNonBookableDay)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: slot=%d", req.AppointmentSlot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, slot=%d",
				req.AppointmentDate, req.AppointmentSlot)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, slot=%d",
				req.AppointmentDate, req.AppointmentSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%d, error=%v",
				req.AppointmentDate, req.AppointmentSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, slot=%d",
		result.ID, req.AppointmentDate, req.AppointmentSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
