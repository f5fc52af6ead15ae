package leave_test

import (
	"testing"
	"time"

	"go-hris-leave/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []string{leave.StatusPending, leave.StatusApproved, leave.StatusRejected}

	for _, from := range statuses {
		for _, to := range statuses {
			want := from == leave.StatusPending && to != leave.StatusPending
			assert.Equal(t, want, leave.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestDaysRequested(t *testing.T) {
	date := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}

	tests := []struct {
		start, end string
		want       int64
	}{
		{"2026-03-02", "2026-03-02", 1},
		{"2026-03-02", "2026-03-04", 3},
		{"2026-02-27", "2026-03-02", 4},
		{"2026-12-30", "2027-01-02", 4},
		{"2026-03-04", "2026-03-02", -1},
	}
	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			got := leave.DaysRequested(date(tt.start), date(tt.end))
			assert.Equal(t, tt.want, got.IntPart())
		})
	}
}
