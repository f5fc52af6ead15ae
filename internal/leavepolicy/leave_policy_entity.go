package leavepolicy

import (
	"time"

	leavepolicyerrors "go-hris-leave/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccrualFrequency string

const (
	AccrualMonthly   AccrualFrequency = "MONTHLY"
	AccrualQuarterly AccrualFrequency = "QUARTERLY"
	AccrualAnnually  AccrualFrequency = "ANNUALLY"
)

func (f AccrualFrequency) Valid() bool {
	switch f {
	case AccrualMonthly, AccrualQuarterly, AccrualAnnually:
		return true
	}
	return false
}

// LeavePolicy is an organization's leave category. The ledger reads it and
// never changes it. AccrualFrequency, CarryForwardAllowed, MaxDaysPerMonth and
// RequiresApproval are stored for accrual, carry-forward and approval-chain
// features; submission and approval only enforce MaxConsecutiveDays.
type LeavePolicy struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policy_company_name,priority:1"`
	Name                string           `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_policy_company_name,priority:2"`
	DefaultDaysPerYear  decimal.Decimal  `gorm:"type:numeric(6,1);not null"`
	CarryForwardAllowed bool             `gorm:"not null"`
	Active              bool             `gorm:"not null;index"`
	AccrualFrequency    AccrualFrequency `gorm:"type:varchar(20);not null"`
	MaxDaysPerMonth     *decimal.Decimal `gorm:"type:numeric(6,1)"`
	MaxConsecutiveDays  *int
	RequiresApproval    bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the value-object rules of a policy.
func (p LeavePolicy) Validate() error {
	if p.DefaultDaysPerYear.IsNegative() {
		return leavepolicyerrors.ErrInvalidDefaultDays
	}
	if p.MaxConsecutiveDays != nil && *p.MaxConsecutiveDays < 1 {
		return leavepolicyerrors.ErrInvalidMaxConsecutiveDays
	}
	if p.MaxDaysPerMonth != nil && p.MaxDaysPerMonth.IsNegative() {
		return leavepolicyerrors.ErrInvalidMaxDaysPerMonth
	}
	if !p.AccrualFrequency.Valid() {
		return leavepolicyerrors.ErrInvalidAccrualFrequency
	}
	return nil
}

// ExceedsConsecutiveLimit reports whether days is above MaxConsecutiveDays.
// A policy without a limit never exceeds.
func (p LeavePolicy) ExceedsConsecutiveLimit(days decimal.Decimal) bool {
	if p.MaxConsecutiveDays == nil {
		return false
	}
	return days.GreaterThan(decimal.NewFromInt(int64(*p.MaxConsecutiveDays)))
}
