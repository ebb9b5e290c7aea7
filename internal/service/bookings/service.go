package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис административной работы с заявками
type Service struct {
	bookingRepo   BookingRepository
	occupancyRepo OccupancyRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	bookingRepo BookingRepository,
	occupancyRepo OccupancyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		occupancyRepo: occupancyRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает список заявок с фильтрацией по периоду, статусу
// и флагу просмотра
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, startDate=%v, endDate=%v, status=%v, onlyUnviewed=%v",
		req.StartDate, req.EndDate, req.Status, req.OnlyUnviewed)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус заявки (pending -> quoted -> completed,
// переходы в любом направлении разрешены)
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, newStatus)
	return models.FromDomainBooking(booking), nil
}

// MarkViewed отмечает заявку как просмотренную администратором.
// Повторный вызов - no-op
func (s *Service) MarkViewed(ctx context.Context, id int64) error {
	s.logger.Info("MarkViewed: marking booking id=%d as viewed", id)

	booking, err := s.getBooking(ctx, id, "MarkViewed")
	if err != nil {
		return err
	}

	if booking.ViewedByAdmin {
		s.logger.Info("MarkViewed: booking id=%d already viewed, no-op", id)
		return nil
	}

	if err := s.bookingRepo.MarkViewed(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkViewed: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkViewed - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkViewed: successfully marked booking id=%d as viewed", id)
	return nil
}

// MarkRescheduleSeen отмечает нерассмотренный запрос на перенос
// как увиденный администратором. Отметка не является решением:
// запрос остается pending. Повторный вызов - no-op
func (s *Service) MarkRescheduleSeen(ctx context.Context, id int64) error {
	s.logger.Info("MarkRescheduleSeen: marking reschedule request of booking id=%d as seen", id)

	booking, err := s.getBooking(ctx, id, "MarkRescheduleSeen")
	if err != nil {
		return err
	}

	if !booking.HasPendingReschedule() {
		s.logger.Warn("MarkRescheduleSeen: booking id=%d has no pending reschedule request", id)
		return ErrNoPendingRequest
	}

	if booking.Reschedule.SeenByAdmin {
		s.logger.Info("MarkRescheduleSeen: request of booking id=%d already seen, no-op", id)
		return nil
	}

	if err := s.bookingRepo.MarkRescheduleSeen(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkRescheduleSeen: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRescheduleSeen - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRescheduleSeen: successfully marked request of booking id=%d as seen", id)
	return nil
}

// Delete удаляет завершённую заявку и освобождает её слот.
// Удаление и освобождение выполняются в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, id, "Delete")
		if err != nil {
			return err
		}

		if !booking.CanBeDeleted() {
			s.logger.Warn("Delete: booking id=%d cannot be deleted, status=%s", id, booking.Status)
			return ErrCannotDelete
		}

		if err := s.occupancyRepo.Release(txCtx, booking.AppointmentDate, booking.AppointmentSlot); err != nil {
			s.logger.Error("Delete: failed to release slot (%s, %d): %v",
				booking.AppointmentDate, booking.AppointmentSlot, err)
			return fmt.Errorf("%w: Delete - failed to release slot: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// getBooking получает domain модель заявки, маппя not-found на сервисную ошибку
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
