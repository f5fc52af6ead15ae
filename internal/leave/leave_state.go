package leave

import (
	"time"

	leaveerrors "go-hris-leave/internal/leave/errors"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

const AutoRejectReason = "insufficient balance at approval time"

const dateLayout = "2006-01-02"

// CanTransition allows only PENDING to APPROVED or REJECTED. Terminal states
// accept nothing.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func targetStatus(decision string) (string, error) {
	switch decision {
	case DecisionApprove:
		return StatusApproved, nil
	case DecisionReject:
		return StatusRejected, nil
	default:
		return "", leaveerrors.ErrInvalidDecision
	}
}

// DaysRequested counts calendar days in [start, end], both inclusive.
func DaysRequested(start, end time.Time) decimal.Decimal {
	start = truncateDate(start)
	end = truncateDate(end)
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
