package request_reschedule

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_reschedule"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	RequestedDate string `json:"requestedDate"` // "2025-03-14"
	RequestedSlot int    `json:"requestedSlot"` // Индекс слота 0..7
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	BookingID     int64  `json:"bookingId"`
	RequestedDate string `json:"requestedDate"`
	RequestedSlot int    `json:"requestedSlot"`
	RequestedTime string `json:"requestedTime"`
	Status        string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID int64, manageToken string) *requestReschedule.Request {
	return &requestReschedule.Request{
		BookingID:   bookingID,
		ManageToken: manageToken,
		Date:        domain.CalendarDay(r.RequestedDate),
		Slot:        domain.Slot(r.RequestedSlot),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestReschedule.Response) *RescheduleResponse {
	return &RescheduleResponse{
		BookingID:     resp.BookingID,
		RequestedDate: resp.RequestedDate.String(),
		RequestedSlot: int(resp.RequestedSlot),
		RequestedTime: resp.SlotLabel,
		Status:        resp.Status,
	}
}
