package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeOccupancyRepo struct {
	data map[domain.CalendarDay]*domain.DayOccupancy
	err  error
}

func (f *fakeOccupancyRepo) GetRange(_ context.Context, from, to domain.CalendarDay) (map[domain.CalendarDay]*domain.DayOccupancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
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

func newTestUseCase(repo OccupancyRepository, now time.Time) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_BookedAndBlockedSlots(t *testing.T) {
	occ := domain.NewDayOccupancy("2025-03-10")
	occ.Booked[2] = 11
	occ.Booked[5] = 12
	occ.Blocked[6] = true

	repo := &fakeOccupancyRepo{
		data: map[domain.CalendarDay]*domain.DayOccupancy{"2025-03-10": occ},
	}
	uc := newTestUseCase(repo, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{From: "2025-03-10", To: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.True(t, day.Bookable)
	assert.Equal(t, []domain.Slot{2, 5}, day.Booked)
	assert.Equal(t, []domain.Slot{6}, day.Blocked)
	assert.Equal(t, []domain.Slot{0, 1, 3, 4, 7}, day.Free)
}

func TestExecute_RestDayHasNoSlots(t *testing.T) {
	// 2025-03-16 is a Sunday; stored occupancy must not leak through
	occ := domain.NewDayOccupancy("2025-03-16")
	occ.Blocked[3] = true

	repo := &fakeOccupancyRepo{
		data: map[domain.CalendarDay]*domain.DayOccupancy{"2025-03-16": occ},
	}
	uc := newTestUseCase(repo, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{From: "2025-03-16", To: "2025-03-16"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.False(t, day.Bookable)
	assert.Empty(t, day.Booked)
	assert.Empty(t, day.Blocked)
	assert.Empty(t, day.Free)
}

func TestExecute_TodayFiltersElapsedSlots(t *testing.T) {
	// 11:30 UTC: slots 0 (09:00), 1 (10:00) and 2 (11:00) have started
	now := time.Date(2025, 3, 12, 11, 30, 0, 0, time.UTC)
	repo := &fakeOccupancyRepo{data: map[domain.CalendarDay]*domain.DayOccupancy{}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{From: "2025-03-12", To: "2025-03-12"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.Equal(t, []domain.Slot{3, 4, 5, 6, 7}, resp.Days[0].Free)
}

func TestExecute_PastDayHasNoFreeSlots(t *testing.T) {
	occ := domain.NewDayOccupancy("2025-03-10")
	occ.Booked[1] = 7

	repo := &fakeOccupancyRepo{
		data: map[domain.CalendarDay]*domain.DayOccupancy{"2025-03-10": occ},
	}
	uc := newTestUseCase(repo, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{From: "2025-03-10", To: "2025-03-10"})
	require.NoError(t, err)

	day := resp.Days[0]
	assert.Empty(t, day.Free)
	assert.Equal(t, []domain.Slot{1}, day.Booked)
}

func TestExecute_RangeCoversDaysWithoutOccupancy(t *testing.T) {
	repo := &fakeOccupancyRepo{data: map[domain.CalendarDay]*domain.DayOccupancy{}}
	uc := newTestUseCase(repo, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{From: "2025-03-10", To: "2025-03-14"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 5)

	for _, day := range resp.Days {
		assert.True(t, day.Bookable)
		assert.Equal(t, []domain.Slot{0, 1, 2, 3, 4, 5, 6, 7}, day.Free)
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	repo := &fakeOccupancyRepo{data: map[domain.CalendarDay]*domain.DayOccupancy{}}
	uc := newTestUseCase(repo, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "malformed from", req: &Request{From: "10-03-2025", To: "2025-03-12"}, wantErr: ErrInvalidDate},
		{name: "malformed to", req: &Request{From: "2025-03-10", To: "garbage"}, wantErr: ErrInvalidDate},
		{name: "inverted range", req: &Request{From: "2025-03-12", To: "2025-03-10"}, wantErr: ErrInvalidRange},
		{name: "range too long", req: &Request{From: "2025-01-01", To: "2025-12-31"}, wantErr: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeOccupancyRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{From: "2025-03-10", To: "2025-03-12"})
	assert.ErrorIs(t, err, ErrInternal)
}
