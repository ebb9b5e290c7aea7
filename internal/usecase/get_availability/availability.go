package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRange проверяет корректность диапазона дат
func validateRange(req *Request) error {
	if err := req.From.Validate(); err != nil {
		return ErrInvalidDate
	}
	if err := req.To.Validate(); err != nil {
		return ErrInvalidDate
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}
	if domain.SpanDays(req.From, req.To) > domain.MaxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxRangeDays)
	}
	return nil
}

// buildDayAvailability применяет производные правила чтения к хранимой занятости:
//   - выходной день абсолютен: free, booked и blocked пусты, что бы ни лежало
//     в хранилище (правило не материализуется в занятость, а накладывается при чтении)
//   - на сегодняшний день свободными считаются только еще не начавшиеся окна;
//     фильтр вычисляется в момент запроса и никогда не сохраняется
func buildDayAvailability(day domain.CalendarDay, occ *domain.DayOccupancy, now time.Time) DayAvailability {
	if !day.IsBookable() {
		return DayAvailability{
			Day:      day,
			Bookable: false,
			Booked:   []domain.Slot{},
			Blocked:  []domain.Slot{},
			Free:     []domain.Slot{},
		}
	}

	free := occ.FreeSlots()

	if day.IsToday(now) {
		upcoming := make([]domain.Slot, 0, len(free))
		for _, slot := range free {
			if !slot.HasStarted(day, now) {
				upcoming = append(upcoming, slot)
			}
		}
		free = upcoming
	} else if day.IsPast(now) {
		// Прошедшие дни диапазона показываем, но записаться в них нельзя
		free = []domain.Slot{}
	}

	return DayAvailability{
		Day:      day,
		Bookable: true,
		Booked:   occ.BookedSlots(),
		Blocked:  occ.BlockedSlots(),
		Free:     free,
	}
}
