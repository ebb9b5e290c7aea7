package request_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	saved    map[int64]*domain.RescheduleRequest
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		saved:    make(map[int64]*domain.RescheduleRequest),
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

func (f *fakeBookingRepo) SetReschedule(_ context.Context, id int64, req *domain.RescheduleRequest) error {
	f.saved[id] = req
	return nil
}

type fakeOccupancyRepo struct {
	occupancy map[domain.CalendarDay]*domain.DayOccupancy
}

func (f *fakeOccupancyRepo) GetDay(_ context.Context, day domain.CalendarDay) (*domain.DayOccupancy, error) {
	if occ, ok := f.occupancy[day]; ok {
		return occ, nil
	}
	return domain.NewDayOccupancy(day), nil
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

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		CustomerName:    "Jane Roe",
		Phone:           "+15550123",
		AppointmentDate: "2025-03-12",
		AppointmentSlot: 2,
		Status:          domain.StatusPending,
		ManageToken:     "token-7",
	}
}

func validRequest() *Request {
	return &Request{
		BookingID:   7,
		ManageToken: "token-7",
		Date:        "2025-03-14",
		Slot:        5,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, occ *fakeOccupancyRepo) *UseCase {
	uc := NewUseCase(bookings, occ, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_RegistersPendingRequest(t *testing.T) {
	bookings := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(bookings, &fakeOccupancyRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.BookingID)
	assert.Equal(t, domain.CalendarDay("2025-03-14"), resp.RequestedDate)
	assert.Equal(t, domain.Slot(5), resp.RequestedSlot)
	assert.Equal(t, string(domain.ReschedulePending), resp.Status)

	saved := bookings.saved[7]
	require.NotNil(t, saved)
	assert.Equal(t, domain.ReschedulePending, saved.Status)
	assert.False(t, saved.SeenByAdmin, "a fresh request starts unseen")
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeOccupancyRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_WrongManageToken(t *testing.T) {
	bookings := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(bookings, &fakeOccupancyRepo{})

	req := validRequest()
	req.ManageToken = "stolen-token"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, bookings.saved)
}

func TestExecute_PreviousRequestIsOverwritten(t *testing.T) {
	// Новый запрос целиком заменяет предыдущий независимо от его статуса:
	// на заявке живет не более одного запроса
	tests := []struct {
		name   string
		status domain.RescheduleStatus
		seen   bool
	}{
		{name: "pending request", status: domain.ReschedulePending, seen: true},
		{name: "denied request", status: domain.RescheduleDenied, seen: true},
		{name: "approved request", status: domain.RescheduleApproved, seen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := testBooking()
			booking.Reschedule = &domain.RescheduleRequest{
				RequestedDate: "2025-03-13",
				RequestedSlot: 1,
				Status:        tt.status,
				SeenByAdmin:   tt.seen,
			}
			bookings := newFakeBookingRepo(booking)
			uc := newTestUseCase(bookings, &fakeOccupancyRepo{})

			_, err := uc.Execute(context.Background(), validRequest())
			require.NoError(t, err)

			saved := bookings.saved[7]
			require.NotNil(t, saved)
			assert.Equal(t, domain.CalendarDay("2025-03-14"), saved.RequestedDate)
			assert.Equal(t, domain.Slot(5), saved.RequestedSlot)
			assert.Equal(t, domain.ReschedulePending, saved.Status)
			assert.False(t, saved.SeenByAdmin, "replacement starts unseen")
		})
	}
}

func TestExecute_TargetSlotOccupied(t *testing.T) {
	day := domain.NewDayOccupancy("2025-03-14")
	day.Booked[5] = 99

	bookings := newFakeBookingRepo(testBooking())
	occ := &fakeOccupancyRepo{
		occupancy: map[domain.CalendarDay]*domain.DayOccupancy{"2025-03-14": day},
	}
	uc := newTestUseCase(bookings, occ)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, bookings.saved)
}

func TestExecute_TargetValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "malformed date", mutate: func(r *Request) { r.Date = "14/03/2025" }, wantErr: ErrInvalidDate},
		{name: "past date", mutate: func(r *Request) { r.Date = "2025-03-09" }, wantErr: ErrInvalidDate},
		{name: "rest day", mutate: func(r *Request) { r.Date = "2025-03-16" }, wantErr: ErrNonBookableDay},
		{name: "invalid slot", mutate: func(r *Request) { r.Slot = 12 }, wantErr: ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := newFakeBookingRepo(testBooking())
			uc := newTestUseCase(bookings, &fakeOccupancyRepo{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SameDayElapsedSlot(t *testing.T) {
	bookings := newFakeBookingRepo(testBooking())
	uc := NewUseCase(bookings, &fakeOccupancyRepo{}, nopLogger{})
	// 13:30 UTC of the requested day: slot 4 (13:00) has started
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 3, 14, 13, 30, 0, 0, time.UTC)}

	req := validRequest()
	req.Slot = 4

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}
