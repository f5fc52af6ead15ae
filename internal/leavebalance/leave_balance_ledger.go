package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	leavebalanceerrors "go-hris-leave/internal/leavebalance/errors"
	"go-hris-leave/internal/shared/dbtx"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger owns every mutation of leave balances. Inside a transaction it locks
// the rows it reads so the caller's check-then-act stays atomic.
//
//go:generate mockgen -source=leave_balance_ledger.go -destination=mock/leave_balance_ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger

	// GetOrCreate returns the balance for key, creating it with allocated
	// days when absent. Concurrent callers observe one row.
	GetOrCreate(ctx context.Context, key BalanceKey, allocated decimal.Decimal) (LeaveBalance, error)
	// TryDebit moves days from remaining to used, or fails with
	// *InsufficientBalanceError leaving the row untouched.
	TryDebit(ctx context.Context, balanceID uuid.UUID, days decimal.Decimal) (LeaveBalance, error)
	// Credit reverses a previous debit.
	Credit(ctx context.Context, balanceID uuid.UUID, days decimal.Decimal) (LeaveBalance, error)
	ListByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error)
}

type ledger struct {
	repo   Repository
	inTx   bool
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("leavebalance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: l.repo.WithTx(tx), inTx: tx != nil, logger: l.logger}
}

func (l *ledger) GetOrCreate(ctx context.Context, key BalanceKey, allocated decimal.Decimal) (LeaveBalance, error) {
	if allocated.IsNegative() {
		return LeaveBalance{}, leavebalanceerrors.ErrInvalidAmount
	}

	if err := l.repo.InsertIfAbsent(ctx, newBalance(key, allocated)); err != nil && !dbtx.IsUniqueViolation(err) {
		l.logger.Error("insert leave balance failed",
			zap.String("employee_id", key.EmployeeID.String()),
			zap.String("policy_id", key.PolicyID.String()),
			zap.Int("year", key.Year),
			zap.Error(err),
		)
		return LeaveBalance{}, mapRepositoryError(err)
	}

	b, err := l.repo.FindByKey(ctx, key, l.inTx)
	if err != nil {
		return LeaveBalance{}, mapRepositoryError(err)
	}
	if !b.CheckInvariant() {
		return LeaveBalance{}, l.corrupted(*b)
	}
	return *b, nil
}

func (l *ledger) TryDebit(ctx context.Context, balanceID uuid.UUID, days decimal.Decimal) (LeaveBalance, error) {
	if !days.IsPositive() {
		return LeaveBalance{}, leavebalanceerrors.ErrInvalidAmount
	}

	applied, err := l.repo.DebitIfAvailable(ctx, balanceID, days)
	if err != nil {
		l.logger.Error("debit leave balance failed", zap.String("balance_id", balanceID.String()), zap.Error(err))
		return LeaveBalance{}, mapRepositoryError(err)
	}

	b, err := l.repo.FindByID(ctx, balanceID)
	if err != nil {
		return LeaveBalance{}, mapRepositoryError(err)
	}
	if !applied {
		l.logger.Info("debit refused",
			zap.String("balance_id", balanceID.String()),
			zap.String("remaining", b.RemainingDays.String()),
			zap.String("requested", days.String()),
		)
		return *b, &leavebalanceerrors.InsufficientBalanceError{
			BalanceID: balanceID.String(),
			Available: b.RemainingDays,
			Requested: days,
		}
	}
	if !b.CheckInvariant() {
		return LeaveBalance{}, l.corrupted(*b)
	}

	l.logger.Info("leave balance debited",
		zap.String("balance_id", balanceID.String()),
		zap.String("days", days.String()),
		zap.String("remaining", b.RemainingDays.String()),
	)
	return *b, nil
}

func (l *ledger) Credit(ctx context.Context, balanceID uuid.UUID, days decimal.Decimal) (LeaveBalance, error) {
	if !days.IsPositive() {
		return LeaveBalance{}, leavebalanceerrors.ErrInvalidAmount
	}

	applied, err := l.repo.CreditIfUsed(ctx, balanceID, days)
	if err != nil {
		l.logger.Error("credit leave balance failed", zap.String("balance_id", balanceID.String()), zap.Error(err))
		return LeaveBalance{}, mapRepositoryError(err)
	}

	b, err := l.repo.FindByID(ctx, balanceID)
	if err != nil {
		return LeaveBalance{}, mapRepositoryError(err)
	}
	if !applied {
		return *b, leavebalanceerrors.ErrInvalidCredit
	}
	if !b.CheckInvariant() {
		return LeaveBalance{}, l.corrupted(*b)
	}
	return *b, nil
}

func (l *ledger) ListByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error) {
	balances, err := l.repo.FindByEmployeeYear(ctx, employeeID, year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapRepositoryError(err)
	}
	return balances, nil
}

func (l *ledger) corrupted(b LeaveBalance) error {
	l.logger.Error("leave balance invariant violated",
		zap.String("balance_id", b.ID.String()),
		zap.String("allocated", b.AllocatedDays.String()),
		zap.String("used", b.UsedDays.String()),
		zap.String("remaining", b.RemainingDays.String()),
	)
	return leavebalanceerrors.ErrLedgerCorrupted
}
