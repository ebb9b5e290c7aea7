package save_admin_blocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case пакетного редактирования административных блокировок
// Каждый день батча - независимая полная замена набора блокировок:
// междневная атомарность не требуется, частичный успех допустим и
// отражается в Summary по каждому дню отдельно
type UseCase struct {
	occupancyRepo OccupancyRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	occupancyRepo OccupancyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		occupancyRepo: occupancyRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case сохранения блокировок
// Повторная отправка того же payload-а дает идентичное состояние
// хранилища (полная замена по дню, diff не вычисляется)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Summary, error) {
	if len(req.Days) == 0 {
		uc.logger.Warn("SaveAdminBlocks: empty payload")
		return nil, ErrEmptyPayload
	}

	now := uc.timeProvider.Now()

	// Обрабатываем дни в детерминированном порядке
	rawDays := make([]string, 0, len(req.Days))
	for rawDay := range req.Days {
		rawDays = append(rawDays, rawDay)
	}
	sort.Strings(rawDays)

	summary := &Summary{Results: make([]DayResult, 0, len(rawDays))}

	for _, rawDay := range rawDays {
		summary.Results = append(summary.Results, uc.processDay(ctx, rawDay, req.Days[rawDay], now))
	}

	uc.logger.Info("SaveAdminBlocks: processed %d days, rejections=%v",
		len(summary.Results), summary.HasRejections())

	return summary, nil
}

// processDay валидирует и применяет полную замену блокировок одного дня
func (uc *UseCase) processDay(ctx context.Context, rawDay string, rawSlots []int, now time.Time) DayResult {
	// 1. Валидация дня
	day, err := domain.ParseDay(rawDay)
	if err != nil {
		uc.logger.Warn("SaveAdminBlocks: invalid day %q", rawDay)
		return DayResult{Day: rawDay, Rejected: RejectInvalidDate}
	}

	if day.IsPast(now) {
		uc.logger.Warn("SaveAdminBlocks: past day %s rejected", day)
		return DayResult{Day: day.String(), Rejected: RejectPastDay}
	}

	if !day.IsBookable() {
		uc.logger.Warn("SaveAdminBlocks: non-bookable day %s rejected", day)
		return DayResult{Day: day.String(), Rejected: RejectNonBookableDay}
	}

	// 2. Валидация индексов слотов
	requested := make([]domain.Slot, 0, len(rawSlots))
	seen := make(map[domain.Slot]bool)
	for _, raw := range rawSlots {
		slot := domain.Slot(raw)
		if !slot.Valid() {
			uc.logger.Warn("SaveAdminBlocks: invalid slot index %d for day %s", raw, day)
			return DayResult{Day: day.String(), Rejected: RejectInvalidSlot}
		}
		if !seen[slot] {
			seen[slot] = true
			requested = append(requested, slot)
		}
	}
	sort.Slice(requested, func(i, j int) bool { return requested[i] < requested[j] })

	result := DayResult{
		Day:           day.String(),
		Applied:       []domain.Slot{},
		SkippedBooked: []domain.Slot{},
	}

	// 3. Замена набора блокировок дня в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем занятость дня с блокировкой строк
		occ, err := uc.occupancyRepo.GetDay(txCtx, day)
		if err != nil {
			return fmt.Errorf("get day occupancy: %w", err)
		}

		// 3.2. Слоты, занятые клиентами, из набора выбрасываем:
		// блокировка не может перекрыть подтвержденное бронирование.
		// Конфликт отражаем в Summary, чтобы вызывающая сторона могла его показать.
		writeSet := make([]domain.Slot, 0, len(requested))
		for _, slot := range requested {
			if _, booked := occ.Booked[slot]; booked {
				result.SkippedBooked = append(result.SkippedBooked, slot)
				continue
			}
			writeSet = append(writeSet, slot)
		}

		// 3.3. Полная замена: пустой writeSet явно снимает все блокировки дня
		if err := uc.occupancyRepo.ReplaceBlocks(txCtx, day, writeSet); err != nil {
			return fmt.Errorf("replace blocks: %w", err)
		}

		result.Applied = writeSet
		return nil
	})
	if err != nil {
		uc.logger.Error("SaveAdminBlocks: failed to save blocks for day %s: %v", day, err)
		return DayResult{Day: day.String(), Rejected: RejectInternal}
	}

	uc.logger.Info("SaveAdminBlocks: day %s - applied %d blocks, skipped %d booked",
		day, len(result.Applied), len(result.SkippedBooked))

	return result
}
