package decide_reschedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Decision решение администратора по запросу на перенос
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// Request модель запроса на решение по переносу
type Request struct {
	BookingID int64
	Decision  Decision
}

// Response модель ответа: итоговое состояние заявки после решения
type Response struct {
	BookingID         int64
	RescheduleStatus  string
	AppointmentDate   domain.CalendarDay // Актуальные дата и слот записи
	AppointmentSlot   domain.Slot        // (новые при approve, прежние при deny)
	AppointmentWindow string
}
