package get_occupancy_detail

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/occupancy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/occupancy/models"
)

const (
	msgMissingRange = "параметры from и to обязательны, формат YYYY-MM-DD"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
)

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/occupancy?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		h.logger.Warn("GET /admin/occupancy - Missing range parameters")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	detail, err := h.service.Detail(r.Context(), &models.DetailRequest{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrInvalidDate):
			h.logger.Warn("GET /admin/occupancy - Invalid date: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, occupancy.ErrInvalidRange):
			h.logger.Warn("GET /admin/occupancy - Invalid range: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/occupancy - Failed to get detail: from=%s, to=%s, error=%v",
				from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/occupancy - Detail retrieved: from=%s, to=%s, days=%d",
		from, to, len(detail.Days))
	handlers.RespondJSON(w, http.StatusOK, detail)
}
