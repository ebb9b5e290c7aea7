package request_reschedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса клиента на перенос записи
// Авторизуется manage-токеном заявки, а не общей аутентификацией
type Request struct {
	BookingID   int64
	ManageToken string

	Date domain.CalendarDay // Желаемая новая дата
	Slot domain.Slot        // Желаемый новый слот
}

// Response модель ответа с зарегистрированным запросом на перенос
type Response struct {
	BookingID     int64
	RequestedDate domain.CalendarDay
	RequestedSlot domain.Slot
	SlotLabel     string
	Status        string
}
