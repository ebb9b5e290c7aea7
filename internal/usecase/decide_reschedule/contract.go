package decide_reschedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyReschedule(ctx context.Context, id int64, day domain.CalendarDay, slot domain.Slot) error
	UpdateRescheduleStatus(ctx context.Context, id int64, status domain.RescheduleStatus) error
}

// OccupancyRepository интерфейс репозитория занятости слотов
type OccupancyRepository interface {
	Claim(ctx context.Context, day domain.CalendarDay, slot domain.Slot, bookingID int64) error
	Release(ctx context.Context, day domain.CalendarDay, slot domain.Slot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
