package get_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса доступности слотов
type Request struct {
	From domain.CalendarDay // Начало диапазона (включительно)
	To   domain.CalendarDay // Конец диапазона (включительно)
}

// DayAvailability статус всех слотов одного дня
type DayAvailability struct {
	Day      domain.CalendarDay
	Bookable bool          // false = выходной день, записи нет
	Booked   []domain.Slot // Занято клиентскими бронированиями
	Blocked  []domain.Slot // Закрыто администратором
	Free     []domain.Slot // Доступно для записи
}

// Response модель ответа: дни диапазона в хронологическом порядке
type Response struct {
	From domain.CalendarDay
	To   domain.CalendarDay
	Days []DayAvailability
}
