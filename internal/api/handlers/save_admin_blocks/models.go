package save_admin_blocks

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	saveAdminBlocks "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_admin_blocks"
)

// SaveBlocksRequest HTTP request model
// Ключ - дата YYYY-MM-DD, значение - полный набор заблокированных
// слотов этого дня. Пустой массив снимает все блокировки дня
type SaveBlocksRequest struct {
	Days map[string][]int `json:"days"`
}

// DayResultResponse итог обработки одного дня
type DayResultResponse struct {
	Date          string `json:"date"`
	Applied       []int  `json:"applied"`
	SkippedBooked []int  `json:"skippedBooked,omitempty"`
	Rejected      string `json:"rejected,omitempty"`
}

// SaveBlocksResponse HTTP response model
type SaveBlocksResponse struct {
	Results []DayResultResponse `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SaveBlocksRequest) ToUseCaseRequest() *saveAdminBlocks.Request {
	return &saveAdminBlocks.Request{Days: r.Days}
}

// FromUseCaseSummary конвертирует итог use case в HTTP response
func FromUseCaseSummary(summary *saveAdminBlocks.Summary) *SaveBlocksResponse {
	resp := &SaveBlocksResponse{
		Results: make([]DayResultResponse, 0, len(summary.Results)),
	}

	for _, result := range summary.Results {
		resp.Results = append(resp.Results, DayResultResponse{
			Date:          result.Day,
			Applied:       slotsToInts(result.Applied),
			SkippedBooked: slotsToInts(result.SkippedBooked),
			Rejected:      result.Rejected,
		})
	}

	return resp
}

func slotsToInts(slots []domain.Slot) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, int(s))
	}
	return out
}
