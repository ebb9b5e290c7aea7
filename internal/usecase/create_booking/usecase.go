package create_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	occupancyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/occupancy"
)

// UseCase use case создания заявки с атомарным захватом слота
type UseCase struct {
	bookingRepo   BookingRepository
	occupancyRepo OccupancyRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
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
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки
// Порядок внутри сериализуемой транзакции: свежее чтение занятости,
// создание заявки, атомарный захват слота. Захват - единственная точка
// фиксации: его неудача откатывает и заявку, частичное состояние
// снаружи не наблюдаемо.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, service=%s, date=%s, slot=%d",
		req.CustomerName, req.ServiceType, req.Date, req.Slot)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Свежее чтение занятости дня - кэшированным данным клиента не доверяем
		occ, err := uc.occupancyRepo.GetDay(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get day occupancy: %v", err)
			return fmt.Errorf("%w: failed to get day occupancy: %v", ErrInternal, err)
		}

		if !occ.IsFree(req.Slot) {
			uc.logger.Warn("CreateBooking: slot (%s, %d) is occupied", req.Date, req.Slot)
			return ErrSlotNotAvailable
		}

		// 3.2. Создаем заявку в статусе pending
		booking := &domain.Booking{
			CustomerName:    req.CustomerName,
			Phone:           req.Phone,
			Email:           req.Email,
			Address:         req.Address,
			ServiceType:     req.ServiceType,
			Comment:         req.Comment,
			AppointmentDate: req.Date,
			AppointmentSlot: req.Slot,
			Status:          domain.StatusPending,
			ManageToken:     uuid.NewString(),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.3. Атомарно захватываем слот - точка фиксации всей операции
		if err := uc.occupancyRepo.Claim(txCtx, req.Date, req.Slot, created.ID); err != nil {
			if occupancyRepo.IsSlotConflict(err) {
				// Проиграли гонку конкурентному запросу - откатываем и заявку
				uc.logger.Warn("CreateBooking: lost claim race for (%s, %d)", req.Date, req.Slot)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to claim slot: %v", err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Гонка может проявиться и на COMMIT сериализуемой транзакции
		if occupancyRepo.IsSlotConflict(err) {
			uc.logger.Warn("CreateBooking: serialization conflict for (%s, %d)", req.Date, req.Slot)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d at (%s, %d)",
		result.ID, result.AppointmentDate, result.AppointmentSlot)

	return &Response{
		ID:           result.ID,
		CustomerName: result.CustomerName,
		Phone:        result.Phone,
		Email:        result.Email,
		Address:      result.Address,
		ServiceType:  result.ServiceType,
		Comment:      result.Comment,
		Date:         result.AppointmentDate,
		Slot:         result.AppointmentSlot,
		SlotLabel:    result.AppointmentSlot.Label(),
		Status:       string(result.Status),
		ManageToken:  result.ManageToken,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
