package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	occupancyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/occupancy"
)

type fakeBookingRepo struct {
	nextID  int64
	created []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	f.created = append(f.created, b)
	return b, nil
}

type fakeOccupancyRepo struct {
	occupancy map[domain.CalendarDay]*domain.DayOccupancy
	claimErr  error
	claims    []domain.Slot
}

func (f *fakeOccupancyRepo) GetDay(_ context.Context, day domain.CalendarDay) (*domain.DayOccupancy, error) {
	if occ, ok := f.occupancy[day]; ok {
		return occ, nil
	}
	return domain.NewDayOccupancy(day), nil
}

func (f *fakeOccupancyRepo) Claim(_ context.Context, day domain.CalendarDay, slot domain.Slot, bookingID int64) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claims = append(f.claims, slot)
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции;
// commitErr имитирует ошибку на COMMIT после успешного тела
type fakeTxManager struct {
	commitErr error
}

func (f fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if f.commitErr != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", f.commitErr)
	}
	return nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		CustomerName: "Jane Roe",
		Phone:        "+15550123",
		Email:        "jane@example.com",
		Address:      "12 Main St",
		ServiceType:  "window cleaning",
		Date:         "2025-03-12",
		Slot:         3,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, occ *fakeOccupancyRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, occ, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	occ := &fakeOccupancyRepo{}
	uc := newTestUseCase(bookings, occ, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.CalendarDay("2025-03-12"), resp.Date)
	assert.Equal(t, domain.Slot(3), resp.Slot)
	assert.Equal(t, "12:00 - 13:00", resp.SlotLabel)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.NotEmpty(t, resp.ManageToken)

	require.Len(t, bookings.created, 1)
	assert.Equal(t, []domain.Slot{3}, occ.claims)
}

func TestExecute_ValidationMatrix(t *testing.T) {
	now := time.Date(2025, 3, 12, 11, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing customer name",
			mutate:  func(r *Request) { r.CustomerName = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing phone",
			mutate:  func(r *Request) { r.Phone = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing address",
			mutate:  func(r *Request) { r.Address = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing service type",
			mutate:  func(r *Request) { r.ServiceType = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "malformed email",
			mutate:  func(r *Request) { r.Email = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed date",
			mutate:  func(r *Request) { r.Date = "12-03-2025" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "slot below range",
			mutate:  func(r *Request) { r.Slot = -1 },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "slot above range",
			mutate:  func(r *Request) { r.Slot = 8 },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "past day",
			mutate:  func(r *Request) { r.Date = "2025-03-11" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "rest day",
			mutate:  func(r *Request) { r.Date = "2025-03-16" },
			wantErr: ErrNonBookableDay,
		},
		{
			name: "same day elapsed slot",
			mutate: func(r *Request) {
				r.Date = "2025-03-12"
				r.Slot = 1 // 10:00, now is 11:30
			},
			wantErr: ErrTooLateToBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{}
			occ := &fakeOccupancyRepo{}
			uc := newTestUseCase(bookings, occ, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, bookings.created, "no booking may be created on validation failure")
		})
	}
}

func TestExecute_SlotOccupiedOnFreshRead(t *testing.T) {
	day := domain.NewDayOccupancy("2025-03-12")
	day.Blocked[3] = true

	bookings := &fakeBookingRepo{}
	occ := &fakeOccupancyRepo{
		occupancy: map[domain.CalendarDay]*domain.DayOccupancy{"2025-03-12": day},
	}
	uc := newTestUseCase(bookings, occ, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, bookings.created)
}

func TestExecute_LostClaimRace(t *testing.T) {
	// Свежее чтение видит слот свободным, но захват проигрывает гонку.
	// Postgres сообщает о проигрыше по-разному: нулем затронутых строк
	// (ErrSlotTaken) либо ошибкой сериализации / нарушением уникальности -
	// проигравший во всех случаях должен получить "слот недоступен"
	tests := []struct {
		name     string
		claimErr error
	}{
		{name: "conflict row already committed", claimErr: occupancyRepo.ErrSlotTaken},
		{name: "serialization failure", claimErr: &pq.Error{Code: "40001"}},
		{name: "unique violation", claimErr: &pq.Error{Code: "23505"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{}
			occ := &fakeOccupancyRepo{claimErr: tt.claimErr}
			uc := newTestUseCase(bookings, occ, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		})
	}
}

func TestExecute_SerializationFailureOnCommit(t *testing.T) {
	// При SERIALIZABLE гонка может проявиться только на COMMIT - тело
	// транзакции проходит чисто, ошибку возвращает менеджер транзакций
	bookings := &fakeBookingRepo{}
	occ := &fakeOccupancyRepo{}
	uc := NewUseCase(bookings, occ, fakeTxManager{commitErr: &pq.Error{Code: "40001"}}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ManageTokensAreUnique(t *testing.T) {
	bookings := &fakeBookingRepo{}
	occ := &fakeOccupancyRepo{}
	uc := newTestUseCase(bookings, occ, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.Slot = 4
	other, err := uc.Execute(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, first.ManageToken, other.ManageToken)
}
