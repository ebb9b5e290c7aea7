package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	listed   []*domain.Booking
	listErr  error

	statusUpdates       map[int64]domain.BookingStatus
	viewedCalls         []int64
	rescheduleSeenCalls []int64
	deleted             []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		statusUpdates: make(map[int64]domain.BookingStatus),
	}
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
	return b, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeBookingRepo) MarkViewed(_ context.Context, id int64) error {
	f.viewedCalls = append(f.viewedCalls, id)
	return nil
}

func (f *fakeBookingRepo) MarkRescheduleSeen(_ context.Context, id int64) error {
	f.rescheduleSeenCalls = append(f.rescheduleSeenCalls, id)
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type released struct {
	day  domain.CalendarDay
	slot domain.Slot
}

type fakeOccupancyRepo struct {
	releases []released
}

func (f *fakeOccupancyRepo) Release(_ context.Context, day domain.CalendarDay, slot domain.Slot) error {
	f.releases = append(f.releases, released{day: day, slot: slot})
	return nil
}

// fakeTxManager выполняет функции без реальных транзакций
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	comment := "second floor"
	return &domain.Booking{
		ID:              7,
		CustomerName:    "Jane Roe",
		Phone:           "+15550123",
		Email:           "jane@example.com",
		Address:         "12 Main St",
		ServiceType:     "window cleaning",
		Comment:         &comment,
		AppointmentDate: "2025-03-12",
		AppointmentSlot: 2,
		Status:          domain.StatusPending,
		ManageToken:     "token-7",
		CreatedAt:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestService(bookings *fakeBookingRepo, occ *fakeOccupancyRepo) *Service {
	return NewService(bookings, occ, fakeTxManager{}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking()), &fakeOccupancyRepo{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Jane Roe", resp.CustomerName)
	assert.Equal(t, "2025-03-12", resp.AppointmentDate)
	assert.Equal(t, "11:00 - 12:00", resp.AppointmentTime)
	assert.Nil(t, resp.Reschedule)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeOccupancyRepo{})

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.listed = []*domain.Booking{testBooking()}
	svc := newTestService(repo, &fakeOccupancyRepo{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(7), resp.Bookings[0].ID)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeOccupancyRepo{})

	badDate := "12.03.2025"
	badStatus := "cancelled"

	tests := []struct {
		name string
		req  *models.ListBookingsRequest
	}{
		{name: "malformed start date", req: &models.ListBookingsRequest{StartDate: &badDate}},
		{name: "malformed end date", req: &models.ListBookingsRequest{EndDate: &badDate}},
		{name: "unknown status", req: &models.ListBookingsRequest{Status: &badStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	svc := newTestService(repo, &fakeOccupancyRepo{})

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "quoted"})
	require.NoError(t, err)

	assert.Equal(t, "quoted", resp.Status)
	assert.Equal(t, domain.StatusQuoted, repo.statusUpdates[7])
}

func TestUpdateStatus_Invalid(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	svc := newTestService(repo, &fakeOccupancyRepo{})

	_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, repo.statusUpdates)
}

func TestMarkViewed(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	svc := newTestService(repo, &fakeOccupancyRepo{})

	require.NoError(t, svc.MarkViewed(context.Background(), 7))
	assert.Equal(t, []int64{7}, repo.viewedCalls)
}

func TestMarkViewed_AlreadyViewedIsNoop(t *testing.T) {
	booking := testBooking()
	booking.ViewedByAdmin = true
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeOccupancyRepo{})

	require.NoError(t, svc.MarkViewed(context.Background(), 7))
	assert.Empty(t, repo.viewedCalls, "repeated call must not hit the repository")
}

func TestMarkRescheduleSeen(t *testing.T) {
	tests := []struct {
		name       string
		reschedule *domain.RescheduleRequest
		wantErr    error
		wantCalls  []int64
	}{
		{
			name:    "no request",
			wantErr: ErrNoPendingRequest,
		},
		{
			name: "resolved request",
			reschedule: &domain.RescheduleRequest{
				RequestedDate: "2025-03-14",
				RequestedSlot: 5,
				Status:        domain.RescheduleDenied,
			},
			wantErr: ErrNoPendingRequest,
		},
		{
			name: "pending unseen",
			reschedule: &domain.RescheduleRequest{
				RequestedDate: "2025-03-14",
				RequestedSlot: 5,
				Status:        domain.ReschedulePending,
			},
			wantCalls: []int64{7},
		},
		{
			name: "pending already seen",
			reschedule: &domain.RescheduleRequest{
				RequestedDate: "2025-03-14",
				RequestedSlot: 5,
				Status:        domain.ReschedulePending,
				SeenByAdmin:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := testBooking()
			booking.Reschedule = tt.reschedule
			repo := newFakeBookingRepo(booking)
			svc := newTestService(repo, &fakeOccupancyRepo{})

			err := svc.MarkRescheduleSeen(context.Background(), 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, repo.rescheduleSeenCalls)
		})
	}
}

func TestDelete_ReleasesSlot(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	repo := newFakeBookingRepo(booking)
	occ := &fakeOccupancyRepo{}
	svc := newTestService(repo, occ)

	require.NoError(t, svc.Delete(context.Background(), 7))

	assert.Equal(t, []int64{7}, repo.deleted)
	require.Len(t, occ.releases, 1)
	assert.Equal(t, released{day: "2025-03-12", slot: 2}, occ.releases[0])
}

func TestDelete_OnlyCompletedBookings(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusQuoted} {
		t.Run(string(status), func(t *testing.T) {
			booking := testBooking()
			booking.Status = status
			repo := newFakeBookingRepo(booking)
			occ := &fakeOccupancyRepo{}
			svc := newTestService(repo, occ)

			err := svc.Delete(context.Background(), 7)
			assert.ErrorIs(t, err, ErrCannotDelete)
			assert.Empty(t, repo.deleted)
			assert.Empty(t, occ.releases)
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeOccupancyRepo{})

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestFromDomainBooking_RescheduleMapping(t *testing.T) {
	booking := testBooking()
	booking.Reschedule = &domain.RescheduleRequest{
		RequestedDate: "2025-03-14",
		RequestedSlot: 5,
		Status:        domain.ReschedulePending,
	}
	svc := newTestService(newFakeBookingRepo(booking), &fakeOccupancyRepo{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)

	require.NotNil(t, resp.Reschedule)
	assert.Equal(t, "2025-03-14", resp.Reschedule.RequestedDate)
	assert.Equal(t, 5, resp.Reschedule.RequestedSlot)
	assert.Equal(t, "14:00 - 15:00", resp.Reschedule.RequestedTime)
	assert.Equal(t, string(domain.ReschedulePending), resp.Reschedule.Status)
	assert.False(t, resp.Reschedule.SeenByAdmin)
}
