package booking

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

// Колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"customer_name",
	"phone",
	"email",
	"address",
	"service_type",
	"comment",
	"appointment_date",
	"appointment_slot",
	"status",
	"viewed_by_admin",
	"manage_token",
	"reschedule_date",
	"reschedule_slot",
	"reschedule_status",
	"reschedule_seen",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками
// Заявка - источник истины о занятом ею слоте; поля reschedule_* хранят
// текущий (или последний разрешенный) запрос на перенос денормализованно
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Вызывается внутри транзакции use case-а создания бронирования:
// откат транзакции при неудачном захвате слота удаляет и заявку
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"phone",
			"email",
			"address",
			"service_type",
			"comment",
			"appointment_date",
			"appointment_slot",
			"status",
			"manage_token",
		).
		Values(
			b.CustomerName,
			b.Phone,
			b.Email,
			b.Address,
			b.ServiceType,
			b.Comment,
			b.AppointmentDate.String(),
			int(b.AppointmentSlot),
			b.Status,
			b.ManageToken,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает заявку по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - используется
// use case-ами переноса и удаления
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListWithFilter получает список заявок с фильтрацией по периоду, статусу
// и флагу "не просмотрено администратором"
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": filter.StartDate.String()})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": filter.EndDate.String()})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.OnlyUnviewed {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"viewed_by_admin": false})
	}

	// Для конкретной даты сортируем по слоту, иначе - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && *filter.StartDate == *filter.EndDate {
		selectBuilder = selectBuilder.OrderBy("appointment_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, appointment_slot DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.execUpdate(ctx, "UpdateStatus", psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// MarkViewed отмечает заявку как просмотренную администратором
// Повторный вызов не меняет состояние - операция идемпотентна
func (r *Repository) MarkViewed(ctx context.Context, id int64) error {
	return r.execUpdate(ctx, "MarkViewed", psqlbuilder.Update("bookings").
		Set("viewed_by_admin", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetReschedule записывает новый запрос на перенос
// Перезаписывает предыдущий запрос целиком: история разрешенных запросов не хранится
func (r *Repository) SetReschedule(ctx context.Context, id int64, req *domain.RescheduleRequest) error {
	return r.execUpdate(ctx, "SetReschedule", psqlbuilder.Update("bookings").
		Set("reschedule_date", req.RequestedDate.String()).
		Set("reschedule_slot", int(req.RequestedSlot)).
		Set("reschedule_status", req.Status).
		Set("reschedule_seen", req.SeenByAdmin).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateRescheduleStatus обновляет только статус запроса на перенос (deny)
func (r *Repository) UpdateRescheduleStatus(ctx context.Context, id int64, status domain.RescheduleStatus) error {
	return r.execUpdate(ctx, "UpdateRescheduleStatus", psqlbuilder.Update("bookings").
		Set("reschedule_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// MarkRescheduleSeen отмечает запрос на перенос как увиденный администратором
func (r *Repository) MarkRescheduleSeen(ctx context.Context, id int64) error {
	return r.execUpdate(ctx, "MarkRescheduleSeen", psqlbuilder.Update("bookings").
		Set("reschedule_seen", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// ApplyReschedule переводит заявку на новые дату и слот и помечает запрос одобренным
// Вызывается только внутри транзакции одобрения переноса, после успешного
// захвата нового слота
func (r *Repository) ApplyReschedule(ctx context.Context, id int64, day domain.CalendarDay, slot domain.Slot) error {
	return r.execUpdate(ctx, "ApplyReschedule", psqlbuilder.Update("bookings").
		Set("appointment_date", day.String()).
		Set("appointment_slot", int(slot)).
		Set("reschedule_status", domain.RescheduleApproved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// Delete удаляет заявку (физическое удаление)
// Освобождение слота - ответственность вызывающего use case-а (в одной транзакции)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execUpdate выполняет UPDATE с проверкой, что строка существовала
func (r *Repository) execUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку таблицы bookings
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                domain.Booking
		appointmentDate  time.Time
		appointmentSlot  int
		rescheduleDate   sql.NullTime
		rescheduleSlot   sql.NullInt64
		rescheduleStatus sql.NullString
		rescheduleSeen   sql.NullBool
		createdAt        sql.NullTime
		updatedAt        sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.Phone,
		&b.Email,
		&b.Address,
		&b.ServiceType,
		&b.Comment,
		&appointmentDate,
		&appointmentSlot,
		&b.Status,
		&b.ViewedByAdmin,
		&b.ManageToken,
		&rescheduleDate,
		&rescheduleSlot,
		&rescheduleStatus,
		&rescheduleSeen,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.AppointmentDate = domain.DayFromTime(appointmentDate)
	b.AppointmentSlot = domain.Slot(appointmentSlot)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Запрос на перенос присутствует, только если заполнен его статус
	if rescheduleStatus.Valid {
		b.Reschedule = &domain.RescheduleRequest{
			RequestedDate: domain.DayFromTime(rescheduleDate.Time),
			RequestedSlot: domain.Slot(rescheduleSlot.Int64),
			Status:        domain.RescheduleStatus(rescheduleStatus.String),
			SeenByAdmin:   rescheduleSeen.Bool,
		}
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
