package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status,priority:1"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates,priority:1"`
	PolicyID   uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates,priority:2"`
	EndDate   time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates,priority:3"`
	TotalDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Reason    string          `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;index:idx_leaves_company_status,priority:2"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	AutoRejected    bool       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time
}

// BalanceYear is the ledger year a request draws from. A request that crosses
// a year boundary is charged in full to the year it starts in.
func (l Leave) BalanceYear() int {
	return l.StartDate.Year()
}

// LeaveView is a Leave joined with the employee's name for listings.
type LeaveView struct {
	Leave
	EmployeeName string
}
