package leavepolicyerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found",
		http.StatusNotFound,
	)
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave policy id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrPolicyNameTaken = apperror.New(
		apperror.CodeConflict,
		"leave policy with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidDefaultDays = apperror.New(
		apperror.CodeInvalidInput,
		"default_days_per_year must be zero or greater",
		http.StatusBadRequest,
	)
	ErrInvalidMaxConsecutiveDays = apperror.New(
		apperror.CodeInvalidInput,
		"max_consecutive_days must be at least 1",
		http.StatusBadRequest,
	)
	ErrInvalidMaxDaysPerMonth = apperror.New(
		apperror.CodeInvalidInput,
		"max_days_per_month must be zero or greater",
		http.StatusBadRequest,
	)
	ErrInvalidAccrualFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"accrual_frequency must be MONTHLY, QUARTERLY or ANNUALLY",
		http.StatusBadRequest,
	)
)
