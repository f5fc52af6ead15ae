package leavepolicy

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_policy_repo.go -destination=mock/leave_policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *LeavePolicy) error
	FindByID(ctx context.Context, id string) (*LeavePolicy, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeavePolicy, error)
	FindAllByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeavePolicy, error)
	Update(ctx context.Context, p *LeavePolicy) error
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

func (r *repository) Create(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	err := db.Order("name ASC").Find(&policies).Error
	return policies, err
}

func (r *repository) Update(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Save(p).Error
}
