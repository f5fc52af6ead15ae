package leavepolicy

import "github.com/shopspring/decimal"

type CreateLeavePolicyRequest struct {
	Name                string           `json:"name" binding:"required,max=100"`
	DefaultDaysPerYear  decimal.Decimal  `json:"default_days_per_year"`
	CarryForwardAllowed bool             `json:"carry_forward_allowed"`
	AccrualFrequency    string           `json:"accrual_frequency" binding:"omitempty,oneof=MONTHLY QUARTERLY ANNUALLY"`
	MaxDaysPerMonth     *decimal.Decimal `json:"max_days_per_month"`
	MaxConsecutiveDays  *int             `json:"max_consecutive_days"`
	RequiresApproval    *bool            `json:"requires_approval"`
}

type LeavePolicyResponse struct {
	ID                  string           `json:"id"`
	CompanyID           string           `json:"company_id"`
	Name                string           `json:"name"`
	DefaultDaysPerYear  decimal.Decimal  `json:"default_days_per_year"`
	CarryForwardAllowed bool             `json:"carry_forward_allowed"`
	Active              bool             `json:"active"`
	AccrualFrequency    string           `json:"accrual_frequency"`
	MaxDaysPerMonth     *decimal.Decimal `json:"max_days_per_month,omitempty"`
	MaxConsecutiveDays  *int             `json:"max_consecutive_days,omitempty"`
	RequiresApproval    bool             `json:"requires_approval"`
}
