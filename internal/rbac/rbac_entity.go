package rbac

import (
	"time"

	"github.com/google/uuid"
)

// Role is a company-defined role; system roles from the access token are
// not stored.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_company_name,priority:1"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_role_company_name,priority:2"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_permission,priority:1"`
	Action   string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_permission,priority:2"`
}

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}
