package decide_reschedule

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	occupancyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/occupancy"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	applied       []appliedReschedule
	statusUpdates []domain.RescheduleStatus
}

type appliedReschedule struct {
	id   int64
	day  domain.CalendarDay
	slot domain.Slot
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	// Копия, чтобы usecase не делил состояние с фейком
	clone := *b
	if b.Reschedule != nil {
		r := *b.Reschedule
		clone.Reschedule = &r
	}
	return &clone, nil
}

func (f *fakeBookingRepo) ApplyReschedule(_ context.Context, id int64, day domain.CalendarDay, slot domain.Slot) error {
	f.applied = append(f.applied, appliedReschedule{id: id, day: day, slot: slot})
	return nil
}

func (f *fakeBookingRepo) UpdateRescheduleStatus(_ context.Context, id int64, status domain.RescheduleStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

type claim struct {
	day  domain.CalendarDay
	slot domain.Slot
}

type fakeOccupancyRepo struct {
	taken    map[claim]bool
	claimErr error
	claims   []claim
	releases []claim
}

func (f *fakeOccupancyRepo) Claim(_ context.Context, day domain.CalendarDay, slot domain.Slot, _ int64) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	key := claim{day: day, slot: slot}
	if f.taken[key] {
		return occupancyRepo.ErrSlotTaken
	}
	f.claims = append(f.claims, key)
	return nil
}

func (f *fakeOccupancyRepo) Release(_ context.Context, day domain.CalendarDay, slot domain.Slot) error {
	f.releases = append(f.releases, claim{day: day, slot: slot})
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции, но фиксирует
// факт отката по ошибке
type fakeTxManager struct {
	rolledBack bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		f.rolledBack = true
	}
	return err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookingWithPendingRequest() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		AppointmentDate: "2025-03-12",
		AppointmentSlot: 2,
		Status:          domain.StatusPending,
		ManageToken:     "token-7",
		Reschedule: &domain.RescheduleRequest{
			RequestedDate: "2025-03-14",
			RequestedSlot: 5,
			Status:        domain.ReschedulePending,
			SeenByAdmin:   true,
		},
	}
}

func TestExecute_ApproveMovesOccupancy(t *testing.T) {
	bookings := newFakeBookingRepo(bookingWithPendingRequest())
	occ := &fakeOccupancyRepo{}
	uc := NewUseCase(bookings, occ, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: DecisionApprove})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleApproved), resp.RescheduleStatus)
	assert.Equal(t, domain.CalendarDay("2025-03-14"), resp.AppointmentDate)
	assert.Equal(t, domain.Slot(5), resp.AppointmentSlot)
	assert.Equal(t, "14:00 - 15:00", resp.AppointmentWindow)

	// Захват нового, затем освобождение старого, затем перевод заявки
	require.Len(t, occ.claims, 1)
	assert.Equal(t, claim{day: "2025-03-14", slot: 5}, occ.claims[0])
	require.Len(t, occ.releases, 1)
	assert.Equal(t, claim{day: "2025-03-12", slot: 2}, occ.releases[0])
	require.Len(t, bookings.applied, 1)
	assert.Equal(t, appliedReschedule{id: 7, day: "2025-03-14", slot: 5}, bookings.applied[0])
}

func TestExecute_ApproveTargetTakenLeavesRequestPending(t *testing.T) {
	bookings := newFakeBookingRepo(bookingWithPendingRequest())
	occ := &fakeOccupancyRepo{
		taken: map[claim]bool{{day: "2025-03-14", slot: 5}: true},
	}
	tx := &fakeTxManager{}
	uc := NewUseCase(bookings, occ, tx, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: DecisionApprove})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.True(t, tx.rolledBack)
	assert.Empty(t, occ.releases, "old slot must stay claimed")
	assert.Empty(t, bookings.applied, "booking must stay untouched")
	assert.Equal(t, domain.ReschedulePending, bookings.bookings[7].Reschedule.Status)
}

func TestExecute_ApproveSerializationFailure(t *testing.T) {
	// Проигранная гонка, сообщенная Postgres-ом как ошибка сериализации,
	// равносильна занятому слоту: запрос остается pending
	bookings := newFakeBookingRepo(bookingWithPendingRequest())
	occ := &fakeOccupancyRepo{claimErr: &pq.Error{Code: "40001"}}
	tx := &fakeTxManager{}
	uc := NewUseCase(bookings, occ, tx, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: DecisionApprove})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.True(t, tx.rolledBack)
	assert.Empty(t, occ.releases)
	assert.Empty(t, bookings.applied)
}

func TestExecute_DenyKeepsAppointment(t *testing.T) {
	bookings := newFakeBookingRepo(bookingWithPendingRequest())
	occ := &fakeOccupancyRepo{}
	uc := NewUseCase(bookings, occ, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: DecisionDeny})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleDenied), resp.RescheduleStatus)
	assert.Equal(t, domain.CalendarDay("2025-03-12"), resp.AppointmentDate)
	assert.Equal(t, domain.Slot(2), resp.AppointmentSlot)

	// Deny не трогает занятость
	assert.Empty(t, occ.claims)
	assert.Empty(t, occ.releases)
	assert.Equal(t, []domain.RescheduleStatus{domain.RescheduleDenied}, bookings.statusUpdates)
}

func TestExecute_NoPendingRequest(t *testing.T) {
	tests := []struct {
		name       string
		reschedule *domain.RescheduleRequest
	}{
		{name: "never requested", reschedule: nil},
		{
			name: "already approved",
			reschedule: &domain.RescheduleRequest{
				RequestedDate: "2025-03-14",
				RequestedSlot: 5,
				Status:        domain.RescheduleApproved,
			},
		},
		{
			name: "already denied",
			reschedule: &domain.RescheduleRequest{
				RequestedDate: "2025-03-14",
				RequestedSlot: 5,
				Status:        domain.RescheduleDenied,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := bookingWithPendingRequest()
			booking.Reschedule = tt.reschedule
			bookings := newFakeBookingRepo(booking)
			uc := NewUseCase(bookings, &fakeOccupancyRepo{}, &fakeTxManager{}, nopLogger{})

			for _, decision := range []Decision{DecisionApprove, DecisionDeny} {
				_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: decision})
				assert.ErrorIs(t, err, ErrNoPendingRequest)
			}
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(newFakeBookingRepo(), &fakeOccupancyRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, Decision: DecisionApprove})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidDecision(t *testing.T) {
	uc := NewUseCase(newFakeBookingRepo(bookingWithPendingRequest()), &fakeOccupancyRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Decision: "postpone"})
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
