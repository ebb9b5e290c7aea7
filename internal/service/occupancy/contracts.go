package occupancy

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// OccupancyRepository интерфейс репозитория занятости слотов
type OccupancyRepository interface {
	GetRange(ctx context.Context, from, to domain.CalendarDay) (map[domain.CalendarDay]*domain.DayOccupancy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
