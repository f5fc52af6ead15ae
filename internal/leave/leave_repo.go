package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const viewColumns = "leaves.*, employees.full_name AS employee_name"

// SearchQuery is a validated SearchFilter.
type SearchQuery struct {
	EmployeeName string
	Status       string
	PolicyID     string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveView, error)
	Update(ctx context.Context, l *Leave) error
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveView, error)
	FindPendingByCompany(ctx context.Context, companyID string) ([]LeaveView, error)
	Search(ctx context.Context, companyID string, q SearchQuery) ([]LeaveView, int64, error)
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

func (r *repository) views(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Model(&Leave{}).
		Select(viewColumns).
		Joins("LEFT JOIN employees ON employees.id = leaves.employee_id")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveView, error) {
	var rows []LeaveView
	err := r.views(ctx).
		Scopes(tenant.TableScope("leaves", companyID)).
		Where("leaves.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveView, error) {
	var rows []LeaveView
	err := r.views(ctx).
		Where("leaves.employee_id = ?", employeeID).
		Order("leaves.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPendingByCompany(ctx context.Context, companyID string) ([]LeaveView, error) {
	var rows []LeaveView
	err := r.views(ctx).
		Scopes(tenant.TableScope("leaves", companyID)).
		Where("leaves.status = ?", StatusPending).
		Order("leaves.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, companyID string, q SearchQuery) ([]LeaveView, int64, error) {
	filtered := func() *gorm.DB {
		db := r.conn(ctx).
			Model(&Leave{}).
			Joins("LEFT JOIN employees ON employees.id = leaves.employee_id").
			Scopes(tenant.TableScope("leaves", companyID))
		if q.EmployeeName != "" {
			db = db.Where("LOWER(employees.full_name) LIKE ?", "%"+escapeLike(strings.ToLower(q.EmployeeName))+"%")
		}
		if q.Status != "" {
			db = db.Where("leaves.status = ?", q.Status)
		}
		if q.PolicyID != "" {
			db = db.Where("leaves.policy_id = ?", q.PolicyID)
		}
		// Overlap with the window: end >= from AND start <= to.
		if q.From != nil {
			db = db.Where("leaves.end_date >= ?", *q.From)
		}
		if q.To != nil {
			db = db.Where("leaves.start_date <= ?", *q.To)
		}
		return db
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []LeaveView{}, 0, nil
	}

	var rows []LeaveView
	err := filtered().
		Select(viewColumns).
		Order("leaves.start_date DESC, leaves.id").
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(&rows).Error
	return rows, total, err
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}
