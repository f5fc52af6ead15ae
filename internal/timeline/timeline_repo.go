package timeline

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timeline_repo.go -destination=mock/timeline_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Create ignores a second row with the same SourceEventID.
	Create(ctx context.Context, e *TimelineEvent) error
	FindByEntity(ctx context.Context, companyID, entityType, entityID string) ([]TimelineEvent, error)
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

func (r *repository) Create(ctx context.Context, e *TimelineEvent) error {
	return dbtx.Conn(ctx, r.db, r.tx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "source_event_id"}}, DoNothing: true}).
		Create(e).Error
}

func (r *repository) FindByEntity(ctx context.Context, companyID, entityType, entityID string) ([]TimelineEvent, error) {
	var events []TimelineEvent
	err := dbtx.Conn(ctx, r.db, r.tx).
		Scopes(tenant.Scope(companyID)).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
