package notification

import (
	"context"
	"database/sql"
	"time"

	"go-hris-leave/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID, id string, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "source_event_id"}}, DoNothing: true}).
		Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error) {
	db := r.conn(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		db = db.Where("read_at IS NULL")
	}

	var out []Notification
	err := db.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *repository) MarkRead(ctx context.Context, recipientID, id string, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read_at", at)
	return res.RowsAffected > 0, res.Error
}
