package decide_reschedule

import (
	decideReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/decide_reschedule"
)

// DecisionRequest HTTP request model
type DecisionRequest struct {
	Decision string `json:"decision"` // "approve" | "deny"
}

// DecisionResponse HTTP response model: итоговое состояние заявки
type DecisionResponse struct {
	BookingID        int64  `json:"bookingId"`
	RescheduleStatus string `json:"rescheduleStatus"`
	AppointmentDate  string `json:"appointmentDate"`
	AppointmentSlot  int    `json:"appointmentSlot"`
	AppointmentTime  string `json:"appointmentTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DecisionRequest) ToUseCaseRequest(bookingID int64) *decideReschedule.Request {
	return &decideReschedule.Request{
		BookingID: bookingID,
		Decision:  decideReschedule.Decision(r.Decision),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *decideReschedule.Response) *DecisionResponse {
	return &DecisionResponse{
		BookingID:        resp.BookingID,
		RescheduleStatus: resp.RescheduleStatus,
		AppointmentDate:  resp.AppointmentDate.String(),
		AppointmentSlot:  int(resp.AppointmentSlot),
		AppointmentTime:  resp.AppointmentWindow,
	}
}
