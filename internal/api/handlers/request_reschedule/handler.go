package request_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	requestReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_reschedule"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingManageToken = "отсутствует токен управления заявкой"
	msgNotFound           = "заявка не найдена"
	msgAccessDenied       = "неверный токен управления заявкой"
	msgInvalidDate        = "некорректная дата переноса"
	msgNonBookableDay     = "перенос на выходной день недоступен"
	msgInvalidSlot        = "некорректный индекс слота"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgTooLateToBook      = "слот уже начался, перенос невозможен"
)

type Handler struct {
	useCase RequestRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RequestRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	manageToken := middleware.GetManageToken(r)
	if manageToken == "" {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing manage token: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgMissingManageToken)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, manageToken))
	if err != nil {
		switch {
		case errors.Is(err, requestReschedule.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestReschedule.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, requestReschedule.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid date: booking_id=%d, date=%s",
				bookingID, req.RequestedDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, requestReschedule.ErrNonBookableDay):
			h.logger.Warn("POST /bookings/{id}/reschedule - Non-bookable day: booking_id=%d, date=%s",
				bookingID, req.RequestedDate)
			handlers.RespondBadRequest(w, msgNonBookableDay)

		case errors.Is(err, requestReschedule.ErrInvalidSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid slot: booking_id=%d, slot=%d",
				bookingID, req.RequestedSlot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, requestReschedule.ErrTooLateToBook):
			h.logger.Warn("POST /bookings/{id}/reschedule - Too late: booking_id=%d, date=%s, slot=%d",
				bookingID, req.RequestedDate, req.RequestedSlot)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, requestReschedule.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot not available: booking_id=%d, date=%s, slot=%d",
				bookingID, req.RequestedDate, req.RequestedSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Request registered: booking_id=%d, date=%s, slot=%d",
		bookingID, req.RequestedDate, req.RequestedSlot)
	handlers.RespondJSON(w, http.StatusAccepted, FromUseCaseResponse(result))
}
