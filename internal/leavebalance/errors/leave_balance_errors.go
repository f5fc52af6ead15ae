package leavebalanceerrors

import (
	"fmt"
	"net/http"

	"go-hris-leave/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"leave days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidCredit = apperror.New(
		apperror.CodeInvalidState,
		"cannot credit more days than were used",
		http.StatusConflict,
	)
	ErrLedgerCorrupted = apperror.New(
		apperror.CodeInternalError,
		"leave balance invariant violated",
		http.StatusInternalServerError,
	)
)

// InsufficientBalanceError carries the amounts behind a refused debit.
type InsufficientBalanceError struct {
	BalanceID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: available %s, requested %s",
		e.Available.String(), e.Requested.String())
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
