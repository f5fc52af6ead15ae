package leavebalance

import (
	"context"
	"database/sql"
	"time"

	"go-hris-leave/internal/shared/dbtx"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// InsertIfAbsent inserts b unless a row with the same key exists.
	InsertIfAbsent(ctx context.Context, b *LeaveBalance) error
	FindByKey(ctx context.Context, key BalanceKey, forUpdate bool) (*LeaveBalance, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveBalance, error)
	FindByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error)
	// DebitIfAvailable applies the debit only when remaining_days covers it,
	// in one statement. It reports whether a row was changed.
	DebitIfAvailable(ctx context.Context, id uuid.UUID, days decimal.Decimal) (bool, error)
	// CreditIfUsed reverses up to used_days, in one statement.
	CreditIfUsed(ctx context.Context, id uuid.UUID, days decimal.Decimal) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) InsertIfAbsent(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "policy_id"}, {Name: "year"}},
			DoNothing: true,
		}).
		Create(b).Error
}

func (r *repository) FindByKey(ctx context.Context, key BalanceKey, forUpdate bool) (*LeaveBalance, error) {
	db := r.conn(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var b LeaveBalance
	err := db.
		Where("employee_id = ? AND policy_id = ? AND year = ?", key.EmployeeID, key.PolicyID, key.Year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveBalance, error) {
	var b LeaveBalance
	if err := r.conn(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.conn(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("created_at ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) DebitIfAvailable(ctx context.Context, id uuid.UUID, days decimal.Decimal) (bool, error) {
	res := r.conn(ctx).Exec(`
UPDATE leave_balances
SET
	used_days = used_days + ?,
	remaining_days = remaining_days - ?,
	version = version + 1,
	updated_at = ?
WHERE id = ?
	AND remaining_days >= ?
`, days, days, time.Now().UTC(), id, days)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) CreditIfUsed(ctx context.Context, id uuid.UUID, days decimal.Decimal) (bool, error) {
	res := r.conn(ctx).Exec(`
UPDATE leave_balances
SET
	used_days = used_days - ?,
	remaining_days = remaining_days + ?,
	version = version + 1,
	updated_at = ?
WHERE id = ?
	AND used_days >= ?
`, days, days, time.Now().UTC(), id, days)
	return res.RowsAffected == 1, res.Error
}
