package decide_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	occupancyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/occupancy"
)

// UseCase use case решения администратора по запросу на перенос
//
// Approve: в одной сериализуемой транзакции атомарно захватывает целевой
// слот, освобождает прежний и переводит заявку на новые дату и слот.
// Неудачный захват (слот успели занять) откатывает всё: запрос остается
// pending, исходная запись и занятость не меняются.
//
// Deny: меняет только статус запроса, занятость не трогает.
type UseCase struct {
	bookingRepo   BookingRepository
	occupancyRepo OccupancyRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	occupancyRepo OccupancyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		occupancyRepo: occupancyRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case решения по переносу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideReschedule: booking=%d, decision=%s", req.BookingID, req.Decision)

	switch req.Decision {
	case DecisionApprove:
		return uc.approve(ctx, req.BookingID)
	case DecisionDeny:
		return uc.deny(ctx, req.BookingID)
	default:
		uc.logger.Warn("DecideReschedule: unknown decision %q", req.Decision)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, req.Decision)
	}
}

// approve одобряет перенос: занятость переезжает на целевой слот
func (uc *UseCase) approve(ctx context.Context, bookingID int64) (*Response, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем заявку с блокировкой строки
		booking, err := uc.getBookingWithPending(txCtx, bookingID)
		if err != nil {
			return err
		}

		target := booking.Reschedule

		// 2. Захватываем целевой слот - финальная проверка доступности.
		// Слот могли занять после подачи запроса (другое бронирование,
		// блокировка или чужой одобренный перенос) - атомарный захват
		// решает и эту гонку: один выигрывает, остальные получают отказ.
		if err := uc.occupancyRepo.Claim(txCtx, target.RequestedDate, target.RequestedSlot, booking.ID); err != nil {
			if occupancyRepo.IsSlotConflict(err) {
				uc.logger.Warn("DecideReschedule: target slot (%s, %d) taken, request stays pending",
					target.RequestedDate, target.RequestedSlot)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("DecideReschedule: failed to claim target slot: %v", err)
			return fmt.Errorf("%w: failed to claim target slot: %v", ErrInternal, err)
		}

		// 3. Освобождаем прежний слот
		if err := uc.occupancyRepo.Release(txCtx, booking.AppointmentDate, booking.AppointmentSlot); err != nil {
			uc.logger.Error("DecideReschedule: failed to release old slot: %v", err)
			return fmt.Errorf("%w: failed to release old slot: %v", ErrInternal, err)
		}

		// 4. Переводим заявку на новые дату и слот, запрос - в approved
		if err := uc.bookingRepo.ApplyReschedule(txCtx, booking.ID, target.RequestedDate, target.RequestedSlot); err != nil {
			uc.logger.Error("DecideReschedule: failed to apply reschedule: %v", err)
			return fmt.Errorf("%w: failed to apply reschedule: %v", ErrInternal, err)
		}

		booking.AppointmentDate = target.RequestedDate
		booking.AppointmentSlot = target.RequestedSlot
		booking.Reschedule.Status = domain.RescheduleApproved
		result = booking
		return nil
	})
	if err != nil {
		// Гонка может проявиться и на COMMIT сериализуемой транзакции
		if occupancyRepo.IsSlotConflict(err) {
			uc.logger.Warn("DecideReschedule: serialization conflict, request stays pending")
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("DecideReschedule: approved booking id=%d -> (%s, %d)",
		result.ID, result.AppointmentDate, result.AppointmentSlot)

	return buildResponse(result), nil
}

// deny отклоняет перенос: меняется только статус запроса
func (uc *UseCase) deny(ctx context.Context, bookingID int64) (*Response, error) {
	booking, err := uc.getBookingWithPending(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.UpdateRescheduleStatus(ctx, bookingID, domain.RescheduleDenied); err != nil {
		uc.logger.Error("DecideReschedule: failed to deny request for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to deny request: %v", ErrInternal, err)
	}

	booking.Reschedule.Status = domain.RescheduleDenied

	uc.logger.Info("DecideReschedule: denied request for booking id=%d, appointment stays (%s, %d)",
		bookingID, booking.AppointmentDate, booking.AppointmentSlot)

	return buildResponse(booking), nil
}

// getBookingWithPending получает заявку и проверяет наличие pending запроса
func (uc *UseCase) getBookingWithPending(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("DecideReschedule: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("DecideReschedule: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Решение возможно только по нерассмотренному запросу: terminal-статусы
	// блокируют повторные переходы на том же объекте запроса
	if !booking.HasPendingReschedule() {
		uc.logger.Warn("DecideReschedule: booking id=%d has no pending request", bookingID)
		return nil, ErrNoPendingRequest
	}

	return booking, nil
}

func buildResponse(b *domain.Booking) *Response {
	return &Response{
		BookingID:         b.ID,
		RescheduleStatus:  string(b.Reschedule.Status),
		AppointmentDate:   b.AppointmentDate,
		AppointmentSlot:   b.AppointmentSlot,
		AppointmentWindow: b.AppointmentSlot.Label(),
	}
}
