package leavebalance

import "github.com/shopspring/decimal"

type BalanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	PolicyID      string          `json:"policy_id"`
	PolicyName    string          `json:"policy_name"`
	Year          int             `json:"year"`
	AllocatedDays decimal.Decimal `json:"allocated_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

func ToResponse(b LeaveBalance, policyName string) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		PolicyID:      b.PolicyID.String(),
		PolicyName:    policyName,
		Year:          b.Year,
		AllocatedDays: b.AllocatedDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays,
	}
}
