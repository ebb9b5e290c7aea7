package decide_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	decideReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/decide_reschedule"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgNoPendingRequest   = "по заявке нет нерассмотренного запроса на перенос"
	msgSlotNotAvailable   = "запрошенный слот уже занят, запрос остается нерассмотренным"
	msgInvalidDecision    = "некорректное решение, ожидается approve или deny"
)

type Handler struct {
	useCase DecideRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase DecideRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/reschedule-decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, decideReschedule.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, decideReschedule.ErrNoPendingRequest):
			h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - No pending request: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNoPendingRequest)

		case errors.Is(err, decideReschedule.ErrSlotNotAvailable):
			h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, decideReschedule.ErrInvalidDecision):
			h.logger.Warn("POST /admin/bookings/{id}/reschedule-decision - Invalid decision: booking_id=%d, decision=%s",
				bookingID, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		default:
			h.logger.Error("POST /admin/bookings/{id}/reschedule-decision - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/reschedule-decision - Decision applied: booking_id=%d, status=%s",
		bookingID, result.RescheduleStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
