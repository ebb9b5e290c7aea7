package domain

// OccupancyStatus is the kind of occupant holding a (day, slot) key.
// A key has at most one occupant: customer bookings and administrative
// blocks are mutually exclusive by construction.
type OccupancyStatus string

const (
	OccupancyBooked  OccupancyStatus = "booked"
	OccupancyBlocked OccupancyStatus = "blocked"
)

// DayOccupancy is the stored occupancy of a single day as read from the
// occupancy table: which slots are customer-booked (and by whom) and which
// are administratively withheld.
type DayOccupancy struct {
	Day     CalendarDay
	Booked  map[Slot]int64 // slot -> booking ID
	Blocked map[Slot]bool
}

// NewDayOccupancy returns an empty occupancy record for the day.
func NewDayOccupancy(day CalendarDay) *DayOccupancy {
	return &DayOccupancy{
		Day:     day,
		Booked:  make(map[Slot]int64),
		Blocked: make(map[Slot]bool),
	}
}

// IsFree reports whether the slot has no occupant of either kind.
func (o *DayOccupancy) IsFree(slot Slot) bool {
	if _, booked := o.Booked[slot]; booked {
		return false
	}
	return !o.Blocked[slot]
}

// BookedSlots returns the customer-booked slot indices in ascending order.
func (o *DayOccupancy) BookedSlots() []Slot {
	return sortedKeys(o.Booked)
}

// BlockedSlots returns the administratively-blocked slot indices in ascending order.
func (o *DayOccupancy) BlockedSlots() []Slot {
	return sortedKeys(o.Blocked)
}

// FreeSlots returns the grid minus both occupant kinds, in ascending order.
func (o *DayOccupancy) FreeSlots() []Slot {
	free := make([]Slot, 0, SlotCount)
	for _, slot := range AllSlots() {
		if o.IsFree(slot) {
			free = append(free, slot)
		}
	}
	return free
}

func sortedKeys[V any](m map[Slot]V) []Slot {
	slots := make([]Slot, 0, len(m))
	for _, slot := range AllSlots() {
		if _, ok := m[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}
