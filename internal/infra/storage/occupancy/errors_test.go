package occupancy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "slot taken sentinel",
			err:  ErrSlotTaken,
			want: true,
		},
		{
			name: "wrapped slot taken",
			err:  fmt.Errorf("%w: Claim - lost claim race: %v", ErrSlotTaken, errors.New("detail")),
			want: true,
		},
		{
			name: "serialization failure",
			err:  &pq.Error{Code: "40001"},
			want: true,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
			want: true,
		},
		{
			name: "wrapped serialization failure from commit",
			err:  fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"}),
			want: true,
		},
		{
			name: "other postgres error",
			err:  &pq.Error{Code: "23503"},
			want: false,
		},
		{
			name: "plain error mentioning the code",
			err:  errors.New("40001"),
			want: false,
		},
		{
			name: "exec error",
			err:  fmt.Errorf("%w: Claim - execute insert: %v", ErrExecQuery, errors.New("connection refused")),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSlotConflict(tt.err))
		})
	}
}
