package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmittedEventType = "leave_submitted"
	LeaveDecidedEventType   = "leave_decided"
)

// LeaveEvent is published once per submission and once per terminal decision.
// Delivery is at-least-once; consumers dedupe on EventID.
type LeaveEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	CompanyID       string    `json:"company_id"`
	EmployeeID      string    `json:"employee_id"`
	ManagerID       string    `json:"manager_id,omitempty"`
	PolicyID        string    `json:"policy_id"`
	ActorID         string    `json:"actor_id"`
	Status          string    `json:"status"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalDays       string    `json:"total_days"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	AutoRejected    bool      `json:"auto_rejected,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
