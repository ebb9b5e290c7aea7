package request_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

// UseCase use case регистрации клиентского запроса на перенос записи
// Целевой слот проверяется на доступность, но НЕ захватывается:
// занятость меняется только при одобрении переноса администратором.
// На заявке живет не более одного запроса: новый запрос целиком
// перезаписывает предыдущий (в том числе нерассмотренный), история
// запросов не хранится
type UseCase struct {
	bookingRepo   BookingRepository
	occupancyRepo OccupancyRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	occupancyRepo OccupancyRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		occupancyRepo: occupancyRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case запроса на перенос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestReschedule: booking=%d, date=%s, slot=%d",
		req.BookingID, req.Date, req.Slot)

	now := uc.timeProvider.Now()

	// 1. Валидация целевых даты и слота
	if err := uc.validateTarget(req, now); err != nil {
		uc.logger.Warn("RequestReschedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заявку и сверяем manage-токен
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RequestReschedule: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RequestReschedule: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.ManageToken != req.ManageToken {
		uc.logger.Warn("RequestReschedule: manage token mismatch for booking id=%d", req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем, что целевой слот сейчас свободен (свежее чтение, без захвата -
	// финальная проверка произойдет при одобрении)
	occ, err := uc.occupancyRepo.GetDay(ctx, req.Date)
	if err != nil {
		uc.logger.Error("RequestReschedule: failed to get day occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to get day occupancy: %v", ErrInternal, err)
	}

	if !occ.IsFree(req.Slot) {
		uc.logger.Warn("RequestReschedule: slot (%s, %d) is occupied", req.Date, req.Slot)
		return nil, ErrSlotNotAvailable
	}

	// 4. Регистрируем запрос, перезаписывая предыдущий, если он был
	reschedule := &domain.RescheduleRequest{
		RequestedDate: req.Date,
		RequestedSlot: req.Slot,
		Status:        domain.ReschedulePending,
		SeenByAdmin:   false,
	}

	if err := uc.bookingRepo.SetReschedule(ctx, req.BookingID, reschedule); err != nil {
		uc.logger.Error("RequestReschedule: failed to set reschedule for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to set reschedule: %v", ErrInternal, err)
	}

	uc.logger.Info("RequestReschedule: registered pending request for booking id=%d -> (%s, %d)",
		req.BookingID, req.Date, req.Slot)

	return &Response{
		BookingID:     req.BookingID,
		RequestedDate: reschedule.RequestedDate,
		RequestedSlot: reschedule.RequestedSlot,
		SlotLabel:     reschedule.RequestedSlot.Label(),
		Status:        string(reschedule.Status),
	}, nil
}

// validateTarget проверяет целевые дату и слот теми же правилами,
// что и создание заявки
func (uc *UseCase) validateTarget(req *Request, now time.Time) error {
	if err := req.Date.Validate(); err != nil {
		return ErrInvalidDate
	}

	if !req.Slot.Valid() {
		return fmt.Errorf("%w: slot index %d is out of range [0, %d)", ErrInvalidSlot, req.Slot, domain.SlotCount)
	}

	if req.Date.IsPast(now) {
		return ErrInvalidDate
	}

	if !req.Date.IsBookable() {
		return ErrNonBookableDay
	}

	if req.Date.IsToday(now) && req.Slot.HasStarted(req.Date, now) {
		return ErrTooLateToBook
	}

	return nil
}
