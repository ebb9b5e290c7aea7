package mark_reschedule_seen

import "context"

type BookingService interface {
	MarkRescheduleSeen(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
