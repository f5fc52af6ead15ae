package leavepolicy

import (
	"errors"
	"strings"

	leavepolicyerrors "go-hris-leave/internal/leavepolicy/errors"
	"go-hris-leave/internal/shared/dbtx"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueNameConstraint = "uq_leave_policy_company_name"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavepolicyerrors.ErrPolicyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == uniqueNameConstraint {
			return leavepolicyerrors.ErrPolicyNameTaken
		}
		return err
	}

	if dbtx.IsUniqueViolation(err) || strings.Contains(strings.ToLower(err.Error()), uniqueNameConstraint) {
		return leavepolicyerrors.ErrPolicyNameTaken
	}

	return err
}
