package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case вычисления доступности слотов по диапазону дат
// Агрегирует хранимую занятость (бронирования + блокировки) с производными
// правилами чтения: выходной день и уже начавшиеся окна сегодняшнего дня
// никогда не предлагаются, независимо от содержимого хранилища
type UseCase struct {
	occupancyRepo OccupancyRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(occupancyRepo OccupancyRepository, logger Logger) *UseCase {
	return &UseCase{
		occupancyRepo: occupancyRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute вычисляет статус free/booked/blocked каждого слота диапазона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация диапазона
	if err := validateRange(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Читаем хранимую занятость одним запросом на весь диапазон
	stored, err := uc.occupancyRepo.GetRange(ctx, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get occupancy range: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupancy range: %v", ErrInternal, err)
	}

	// 3. Собираем ответ по каждому дню диапазона
	days := domain.DaysBetween(req.From, req.To)
	result := make([]DayAvailability, 0, len(days))

	for _, day := range days {
		occ, ok := stored[day]
		if !ok {
			occ = domain.NewDayOccupancy(day)
		}
		result = append(result, buildDayAvailability(day, occ, now))
	}

	uc.logger.Info("GetAvailability: computed availability for %d days [%s, %s]",
		len(result), req.From, req.To)

	return &Response{
		From: req.From,
		To:   req.To,
		Days: result,
	}, nil
}

