package leavebalance

import (
	"errors"

	leavebalanceerrors "go-hris-leave/internal/leavebalance/errors"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrBalanceNotFound
	}
	if dbtx.IsRetryable(err) {
		return apperror.ErrBusy.WithErr(err)
	}
	return err
}
