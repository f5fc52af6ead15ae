package employee

import (
	"context"
	"errors"

	employeeerrors "go-hris-leave/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory resolves employees for other features. It never writes.
type Directory interface {
	Resolve(ctx context.Context, id string) (Employee, error)
}

type directory struct {
	repo   Repository
	logger *zap.Logger
}

func NewDirectory(repo Repository, logger ...*zap.Logger) Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	return &directory{repo: repo, logger: l}
}

func (d *directory) Resolve(ctx context.Context, id string) (Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Employee{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := d.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Employee{}, employeeerrors.ErrEmployeeNotFound
		}
		d.logger.Error("resolve employee failed", zap.String("employee_id", id), zap.Error(err))
		return Employee{}, err
	}
	return *empl, nil
}
