package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модели

// DetailRequest запрос админской детализации занятости за период
type DetailRequest struct {
	From string `json:"from"` // "2025-03-10"
	To   string `json:"to"`   // "2025-03-16"
}

// Response модели

// SlotDetail занятость одного окна: кто держит слот
type SlotDetail struct {
	Slot      int    `json:"slot"`
	Time      string `json:"time"` // "09:00 - 10:00"
	Status    string `json:"status"`
	BookingID *int64 `json:"bookingId,omitempty"` // Только для booked
}

// DayDetail занятость одного дня с привязкой к заявкам
type DayDetail struct {
	Date     string       `json:"date"`
	Bookable bool         `json:"bookable"`
	Slots    []SlotDetail `json:"slots"`
	Free     []int        `json:"free"`
}

// DetailResponse детализация занятости за период
type DetailResponse struct {
	From string      `json:"from"`
	To   string      `json:"to"`
	Days []DayDetail `json:"days"`
}

// Методы конвертации

// FromDayOccupancy строит детализацию дня из хранимой занятости
func FromDayOccupancy(day domain.CalendarDay, occ *domain.DayOccupancy) DayDetail {
	detail := DayDetail{
		Date:     day.String(),
		Bookable: day.IsBookable(),
		Slots:    make([]SlotDetail, 0, domain.SlotCount),
		Free:     make([]int, 0, domain.SlotCount),
	}

	for _, slot := range occ.BookedSlots() {
		bookingID := occ.Booked[slot]
		detail.Slots = append(detail.Slots, SlotDetail{
			Slot:      int(slot),
			Time:      slot.Label(),
			Status:    string(domain.OccupancyBooked),
			BookingID: &bookingID,
		})
	}

	for _, slot := range occ.BlockedSlots() {
		detail.Slots = append(detail.Slots, SlotDetail{
			Slot:   int(slot),
			Time:   slot.Label(),
			Status: string(domain.OccupancyBlocked),
		})
	}

	if detail.Bookable {
		for _, slot := range occ.FreeSlots() {
			detail.Free = append(detail.Free, int(slot))
		}
	}

	return detail
}
