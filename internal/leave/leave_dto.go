package leave

import "github.com/shopspring/decimal"

type SubmitLeaveRequest struct {
	// EmployeeID defaults to the caller's own employee id.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	PolicyID   string `json:"policy_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"max=1000"`
}

type DecideLeaveRequest struct {
	Decision        string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	RejectionReason string `json:"rejection_reason" binding:"max=1000"`
}

type SearchFilter struct {
	EmployeeName string `form:"employee_name"`
	Status       string `form:"status"`
	PolicyID     string `form:"policy_id"`
	From         string `form:"from"`
	To           string `form:"to"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type LeaveResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	PolicyID        string          `json:"policy_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalDays       decimal.Decimal `json:"total_days"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	DecidedAt       *string         `json:"decided_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	AutoRejected    bool            `json:"auto_rejected"`
	CreatedAt       string          `json:"created_at"`
}

type SearchResult struct {
	Items []LeaveResponse
	Total int64
	Page  int
	Size  int
}
