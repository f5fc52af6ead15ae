package timeline

import (
	"time"

	"github.com/google/uuid"
)

const EntityTypeLeave = "LEAVE"

type TimelineEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_timeline_entity,priority:1"`
	EntityType    string     `gorm:"type:varchar(30);not null;index:idx_timeline_entity,priority:2"`
	EntityID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_timeline_entity,priority:3"`
	Action        string     `gorm:"type:varchar(50);not null"`
	ActorID       uuid.UUID  `gorm:"type:uuid;not null"`
	TargetID      *uuid.UUID `gorm:"type:uuid"`
	Message       string     `gorm:"type:text"`
	SourceEventID *string    `gorm:"type:varchar(64);uniqueIndex:uq_timeline_source_event"`
	CreatedAt     time.Time
}
