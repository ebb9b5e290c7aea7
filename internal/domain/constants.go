package domain

import "time"

// Slot grid constants. The grid is global: every bookable day has the same
// eight one-hour windows starting at 09:00.
const (
	SlotCount     = 8
	FirstSlotHour = 9
	SlotDuration  = time.Hour
)

// RestDay is the weekly non-bookable day. No slot on a rest day is ever
// offered or stored as occupied.
const RestDay = time.Weekday(time.Sunday)

// Business validation constants
const (
	MaxCustomerNameLength = 120
	MaxAddressLength      = 300
	MaxCommentLength      = 500
	MaxRangeDays          = 92 // максимальный диапазон дат в одном запросе доступности
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// ValidStatuses список допустимых статусов заявки
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusQuoted,
	StatusCompleted,
}
