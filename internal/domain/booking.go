package domain

import "time"

// BookingStatus represents the lifecycle status of a booking (quote request).
// The lifecycle is staff-driven and orthogonal to slot occupancy.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusQuoted    BookingStatus = "quoted"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a customer appointment request. The booking is the
// source of truth for its currently-claimed (day, slot); the occupancy
// table holds the back-reference.
type Booking struct {
	ID           int64
	CustomerName string
	Phone        string
	Email        string
	Address      string
	ServiceType  string
	Comment      *string

	AppointmentDate CalendarDay
	AppointmentSlot Slot

	Status        BookingStatus
	ViewedByAdmin bool

	// ManageToken authorizes customer-initiated actions on this booking
	// (reschedule requests) without general authentication.
	ManageToken string

	// Reschedule is the outstanding or last-resolved reschedule request.
	// Nil when the customer never asked to move the appointment.
	Reschedule *RescheduleRequest

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeDeleted reports whether the booking may be removed.
// Only completed bookings are eligible for deletion.
func (b *Booking) CanBeDeleted() bool {
	return b.Status == StatusCompleted
}

// HasPendingReschedule reports whether an unresolved reschedule request exists.
func (b *Booking) HasPendingReschedule() bool {
	return b.Reschedule != nil && b.Reschedule.Status == ReschedulePending
}

// IsValidStatus reports whether s is a known booking status.
func IsValidStatus(s BookingStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// BookingsFilter narrows the admin booking listing. Nil fields are not applied.
type BookingsFilter struct {
	StartDate    *CalendarDay
	EndDate      *CalendarDay
	Status       *BookingStatus
	OnlyUnviewed bool
}
