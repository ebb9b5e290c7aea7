package save_admin_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	saveAdminBlocks "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_admin_blocks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyPayload       = "не указано ни одного дня"
)

type Handler struct {
	useCase SaveAdminBlocksUseCase
	logger  Logger
}

func NewHandler(useCase SaveAdminBlocksUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SaveBlocksRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	summary, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, saveAdminBlocks.ErrEmptyPayload):
			h.logger.Warn("POST /admin/blocks - Empty payload")
			handlers.RespondBadRequest(w, msgEmptyPayload)

		default:
			h.logger.Error("POST /admin/blocks - Failed to save blocks: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Батч обрабатывается по дням независимо: частичный успех - это 207
	status := http.StatusOK
	if summary.HasRejections() {
		status = http.StatusMultiStatus
	}

	h.logger.Info("POST /admin/blocks - Blocks saved: days=%d, rejections=%v",
		len(summary.Results), summary.HasRejections())
	handlers.RespondJSON(w, status, FromUseCaseSummary(summary))
}
