package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Valid(t *testing.T) {
	assert.True(t, Slot(0).Valid())
	assert.True(t, Slot(7).Valid())
	assert.False(t, Slot(-1).Valid())
	assert.False(t, Slot(8).Valid())
}

func TestSlot_Label(t *testing.T) {
	assert.Equal(t, "09:00 - 10:00", Slot(0).Label())
	assert.Equal(t, "13:00 - 14:00", Slot(4).Label())
	assert.Equal(t, "16:00 - 17:00", Slot(7).Label())
}

func TestSlot_HasStarted(t *testing.T) {
	day := CalendarDay("2025-03-12")

	tests := []struct {
		name string
		slot Slot
		now  time.Time
		want bool
	}{
		{
			name: "before slot start",
			slot: Slot(2), // 11:00
			now:  time.Date(2025, 3, 12, 10, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "exactly at slot start",
			slot: Slot(2),
			now:  time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "inside slot window",
			slot: Slot(2),
			now:  time.Date(2025, 3, 12, 11, 30, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "future day",
			slot: Slot(0),
			now:  time.Date(2025, 3, 11, 23, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.HasStarted(day, tt.now))
		})
	}
}

func TestDayOccupancy_FreeSlots(t *testing.T) {
	occ := NewDayOccupancy("2025-03-10")
	occ.Booked[2] = 101
	occ.Booked[5] = 102
	occ.Blocked[6] = true

	assert.Equal(t, []Slot{2, 5}, occ.BookedSlots())
	assert.Equal(t, []Slot{6}, occ.BlockedSlots())
	assert.Equal(t, []Slot{0, 1, 3, 4, 7}, occ.FreeSlots())

	assert.False(t, occ.IsFree(2))
	assert.False(t, occ.IsFree(6))
	assert.True(t, occ.IsFree(0))
}
