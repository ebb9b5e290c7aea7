package domain

import (
	"fmt"
	"time"
)

// Slot is an index into the fixed daily slot grid: slot i is the one-hour
// window starting at (FirstSlotHour + i):00. Valid indices are 0..SlotCount-1.
type Slot int

// Valid reports whether the index is inside the grid.
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotCount
}

// StartHour returns the hour of day (0-23) at which the slot begins.
func (s Slot) StartHour() int {
	return FirstSlotHour + int(s)
}

// Label returns the human-readable window, e.g. "09:00 - 10:00".
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:00 - %02d:00", s.StartHour(), s.StartHour()+1)
}

// StartTime returns the UTC instant at which the slot begins on the given day.
func (s Slot) StartTime(day CalendarDay) time.Time {
	return day.Time().Add(time.Duration(s.StartHour()) * time.Hour)
}

// HasStarted reports whether the slot's start time has already elapsed
// under the reference clock. Used to hide past windows for same-day booking.
func (s Slot) HasStarted(day CalendarDay, now time.Time) bool {
	return !now.UTC().Before(s.StartTime(day))
}

// AllSlots returns the full grid 0..SlotCount-1.
func AllSlots() []Slot {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}
