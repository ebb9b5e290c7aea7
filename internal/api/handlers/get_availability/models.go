package get_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// DayAvailabilityResponse статус слотов одного дня
type DayAvailabilityResponse struct {
	Date     string `json:"date"` // "2025-03-10"
	Bookable bool   `json:"bookable"`
	Booked   []int  `json:"booked"`
	Blocked  []int  `json:"blocked"`
	Free     []int  `json:"free"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From string                    `json:"from"`
	To   string                    `json:"to"`
	Days []DayAvailabilityResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		From: resp.From.String(),
		To:   resp.To.String(),
		Days: make([]DayAvailabilityResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		out.Days = append(out.Days, DayAvailabilityResponse{
			Date:     day.Day.String(),
			Bookable: day.Bookable,
			Booked:   slotsToInts(day.Booked),
			Blocked:  slotsToInts(day.Blocked),
			Free:     slotsToInts(day.Free),
		})
	}

	return out
}

func slotsToInts(slots []domain.Slot) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, int(s))
	}
	return out
}
