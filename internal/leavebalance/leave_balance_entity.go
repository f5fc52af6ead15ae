package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceKey identifies the one balance row of an employee for a policy and year.
type BalanceKey struct {
	EmployeeID uuid.UUID
	PolicyID   uuid.UUID
	Year       int
}

// LeaveBalance is the ledger row. RemainingDays is stored rather than derived so
// that a debit can be a single conditional UPDATE on it.
type LeaveBalance struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_key,priority:1"`
	PolicyID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_key,priority:2;index"`
	Year          int             `gorm:"not null;uniqueIndex:uq_leave_balance_key,priority:3"`
	AllocatedDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	UsedDays      decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	RemainingDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Version       int64           `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Key() BalanceKey {
	return BalanceKey{EmployeeID: b.EmployeeID, PolicyID: b.PolicyID, Year: b.Year}
}

// HasAtLeast reports whether the balance could cover days right now.
func (b LeaveBalance) HasAtLeast(days decimal.Decimal) bool {
	return b.RemainingDays.GreaterThanOrEqual(days)
}

// CheckInvariant verifies remaining = allocated - used, used >= 0 and remaining >= 0.
func (b LeaveBalance) CheckInvariant() bool {
	if b.UsedDays.IsNegative() || b.RemainingDays.IsNegative() {
		return false
	}
	return b.RemainingDays.Equal(b.AllocatedDays.Sub(b.UsedDays))
}

func newBalance(key BalanceKey, allocated decimal.Decimal) *LeaveBalance {
	return &LeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    key.EmployeeID,
		PolicyID:      key.PolicyID,
		Year:          key.Year,
		AllocatedDays: allocated,
		UsedDays:      decimal.Zero,
		RemainingDays: allocated,
	}
}
