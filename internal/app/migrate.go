package app

import (
	"errors"
	"fmt"

	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/leave"
	"go-hris-leave/internal/leavebalance"
	"go-hris-leave/internal/leavepolicy"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/notification"
	"go-hris-leave/internal/rbac"
	"go-hris-leave/internal/timeline"

	"gorm.io/gorm"
)

// ErrAutoMigrateUnsupported is returned for dialects whose schema has to be
// managed by migrations: the entities declare postgres column types (uuid).
var ErrAutoMigrateUnsupported = errors.New("auto-migrate supports postgres only")

// Migrate creates or updates every table the service reads or writes.
// Production schemas are managed outside the binary; DB_AUTO_MIGRATE is for
// local runs.
func Migrate(db *gorm.DB) error {
	if name := db.Dialector.Name(); name != "postgres" {
		return fmt.Errorf("%w: got %s", ErrAutoMigrateUnsupported, name)
	}
	return db.AutoMigrate(
		&employee.Employee{},
		&leavepolicy.LeavePolicy{},
		&leavebalance.LeaveBalance{},
		&leave.Leave{},
		&kafka.OutboxEvent{},
		&timeline.TimelineEvent{},
		&notification.Notification{},
		&rbac.Role{},
		&rbac.Permission{},
		&rbac.RolePermission{},
		&rbac.EmployeeRole{},
	)
}
