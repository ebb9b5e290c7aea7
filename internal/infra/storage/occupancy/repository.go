package occupancy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий таблицы занятости слотов (slot_occupancy)
// Таблица - единственный источник истины о занятости: PRIMARY KEY (day, slot)
// гарантирует не более одного владельца на ключ, независимо от вида владельца
// (бронирование или административная блокировка)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim атомарно занимает слот под бронирование
// Реализовано как единственная условная запись (INSERT ... ON CONFLICT DO NOTHING):
// при конкурентных вызовах ровно один получает слот, остальные - ErrSlotTaken.
// Никогда не реализовывать как пару "проверка + запись" - это источник гонок.
func (r *Repository) Claim(ctx context.Context, day domain.CalendarDay, slot domain.Slot, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_occupancy").
		Columns("day", "slot", "status", "booking_id").
		Values(day.String(), int(slot), domain.OccupancyBooked, bookingID).
		Suffix("ON CONFLICT (day, slot) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		// serialization_failure / unique_violation - та же проигранная гонка,
		// только сообщенная Postgres-ом как ошибка, а не нулем затронутых строк
		if IsSlotConflict(err) {
			return fmt.Errorf("%w: Claim - lost claim race: %v", ErrSlotTaken, err)
		}
		return fmt.Errorf("%w: Claim - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}

	// 0 затронутых строк = ключ уже занят (проиграли гонку либо слот заблокирован)
	if rowsAffected == 0 {
		return ErrSlotTaken
	}

	return nil
}

// Release освобождает слот, занятый бронированием
// Отсутствие строки не считается ошибкой - операция идемпотентна
func (r *Repository) Release(ctx context.Context, day domain.CalendarDay, slot domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_occupancy").
		Where(squirrel.Eq{
			"day":    day.String(),
			"slot":   int(slot),
			"status": domain.OccupancyBooked,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceBlocks полностью заменяет набор административных блокировок дня
// Пустой набор слотов явно снимает все блокировки дня.
// Строки со статусом booked не затрагиваются: ON CONFLICT DO NOTHING
// не позволяет блокировке перекрыть клиентское бронирование даже при гонке.
// Вызывать только внутри транзакции (txManager.Do): пара delete+insert
// вне транзакции на мгновение оставляет день без блокировок.
func (r *Repository) ReplaceBlocks(ctx context.Context, day domain.CalendarDay, slots []domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Снимаем существующие блокировки дня
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("slot_occupancy").
		Where(squirrel.Eq{
			"day":    day.String(),
			"status": domain.OccupancyBlocked,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - execute delete: %v", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("slot_occupancy").
		Columns("day", "slot", "status")
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(day.String(), int(slot), domain.OccupancyBlocked)
	}

	insertQuery, insertArgs, err := insertBuilder.
		Suffix("ON CONFLICT (day, slot) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetDay получает занятость одного дня
// Внутри транзакции блокирует строки дня (FOR UPDATE) - используется
// use case-ами редактирования блокировок
func (r *Repository) GetDay(ctx context.Context, day domain.CalendarDay) (*domain.DayOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("day", "slot", "status", "booking_id").
		From("slot_occupancy").
		Where(squirrel.Eq{"day": day.String()}).
		OrderBy("slot ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancies, err := r.scanOccupancy(rows)
	if err != nil {
		return nil, err
	}

	if occ, ok := occupancies[day]; ok {
		return occ, nil
	}
	return domain.NewDayOccupancy(day), nil
}

// GetRange получает занятость всех дней диапазона [from, to] включительно
// Дни без занятых слотов в результат не попадают - их дополняет агрегатор
func (r *Repository) GetRange(ctx context.Context, from, to domain.CalendarDay) (map[domain.CalendarDay]*domain.DayOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day", "slot", "status", "booking_id").
		From("slot_occupancy").
		Where(squirrel.GtOrEq{"day": from.String()}).
		Where(squirrel.LtOrEq{"day": to.String()}).
		OrderBy("day ASC, slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOccupancy(rows)
}

// scanOccupancy сканирует строки таблицы занятости в карты по дням
func (r *Repository) scanOccupancy(rows *sql.Rows) (map[domain.CalendarDay]*domain.DayOccupancy, error) {
	result := make(map[domain.CalendarDay]*domain.DayOccupancy)

	for rows.Next() {
		var (
			dayTime   time.Time
			slot      int
			status    string
			bookingID sql.NullInt64
		)

		if err := rows.Scan(&dayTime, &slot, &status, &bookingID); err != nil {
			return nil, fmt.Errorf("%w: scanOccupancy - scan row: %v", ErrScanRow, err)
		}

		day := domain.DayFromTime(dayTime)
		occ, ok := result[day]
		if !ok {
			occ = domain.NewDayOccupancy(day)
			result[day] = occ
		}

		switch domain.OccupancyStatus(status) {
		case domain.OccupancyBooked:
			occ.Booked[domain.Slot(slot)] = bookingID.Int64
		case domain.OccupancyBlocked:
			occ.Blocked[domain.Slot(slot)] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOccupancy - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
