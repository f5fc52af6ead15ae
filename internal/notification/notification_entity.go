package notification

import (
	"time"

	"github.com/google/uuid"
)

const CategoryLeave = "LEAVE"

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	Title         string     `gorm:"type:varchar(200);not null"`
	Body          string     `gorm:"type:text"`
	Category      string     `gorm:"type:varchar(30);not null"`
	RefID         *uuid.UUID `gorm:"type:uuid"`
	SourceEventID *string    `gorm:"type:varchar(64);uniqueIndex:uq_notification_source_event"`
	ReadAt        *time.Time
	CreatedAt     time.Time `gorm:"index:idx_notifications_recipient"`
}
