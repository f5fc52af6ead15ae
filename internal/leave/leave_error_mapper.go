package leave

import (
	"errors"

	leaveerrors "go-hris-leave/internal/leave/errors"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if dbtx.IsRetryable(err) {
		return apperror.ErrBusy.WithErr(err)
	}
	return err
}
