package occupancy

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/occupancy/models"
)

// Service сервис админской детализации занятости слотов.
// В отличие от публичной выдачи доступности, показывает привязку
// занятых слотов к конкретным заявкам
type Service struct {
	occupancyRepo OccupancyRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса занятости
func NewService(occupancyRepo OccupancyRepository, logger Logger) *Service {
	return &Service{
		occupancyRepo: occupancyRepo,
		logger:        logger,
	}
}

// Detail возвращает детализацию занятости за период с ID заявок
func (s *Service) Detail(ctx context.Context, req *models.DetailRequest) (*models.DetailResponse, error) {
	s.logger.Info("Detail: fetching occupancy detail from=%s to=%s", req.From, req.To)

	from, to, err := s.parseRange(req)
	if err != nil {
		s.logger.Warn("Detail: invalid range: %v", err)
		return nil, err
	}

	occupancies, err := s.occupancyRepo.GetRange(ctx, from, to)
	if err != nil {
		s.logger.Error("Detail: repository error: %v", err)
		return nil, fmt.Errorf("%w: Detail - repository error: %v", ErrInternal, err)
	}

	days := domain.DaysBetween(from, to)
	resp := &models.DetailResponse{
		From: from.String(),
		To:   to.String(),
		Days: make([]models.DayDetail, 0, len(days)),
	}

	for _, day := range days {
		occ, ok := occupancies[day]
		if !ok {
			occ = domain.NewDayOccupancy(day)
		}
		resp.Days = append(resp.Days, models.FromDayOccupancy(day, occ))
	}

	s.logger.Info("Detail: successfully built detail for %d days", len(resp.Days))
	return resp, nil
}

// parseRange валидирует и парсит границы периода
func (s *Service) parseRange(req *models.DetailRequest) (domain.CalendarDay, domain.CalendarDay, error) {
	from, err := domain.ParseDay(req.From)
	if err != nil {
		return "", "", ErrInvalidDate
	}

	to, err := domain.ParseDay(req.To)
	if err != nil {
		return "", "", ErrInvalidDate
	}

	if to.Before(from) {
		return "", "", fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}

	if domain.SpanDays(from, to) > domain.MaxRangeDays {
		return "", "", fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxRangeDays)
	}

	return from, to, nil
}
