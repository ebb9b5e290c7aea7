package domain

// RescheduleStatus represents the state of a reschedule request.
// Transitions: pending -> approved | denied. Terminal states block further
// transitions on the request; a new customer request replaces the resolved one.
type RescheduleStatus string

const (
	ReschedulePending  RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleDenied   RescheduleStatus = "denied"
)

// RescheduleRequest is the customer's ask to move a booking to a new
// (day, slot). The target is validated but not claimed at request time;
// occupancy changes hands only on staff approval.
type RescheduleRequest struct {
	RequestedDate CalendarDay
	RequestedSlot Slot
	Status        RescheduleStatus

	// SeenByAdmin tracks staff visibility of the request, independent of
	// the approve/deny decision and of Booking.ViewedByAdmin.
	SeenByAdmin bool
}

// IsResolved reports whether the request reached a terminal state.
func (r *RescheduleRequest) IsResolved() bool {
	return r.Status == RescheduleApproved || r.Status == RescheduleDenied
}
