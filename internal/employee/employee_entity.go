package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the slice of the employee record the leave subsystem reads.
// The table itself is owned by the employee administration service.
type Employee struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID *uuid.UUID `gorm:"type:uuid"`
	FullName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
