package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/shared/contextutil"

	"github.com/google/uuid"
)

const aggregateTypeLeave = "leave"

// EventSink records lifecycle events. Bound to a transaction through WithTx,
// the event commits or rolls back together with the leave row.
type EventSink interface {
	WithTx(tx *sql.Tx) EventSink
	Publish(ctx context.Context, event events.LeaveEvent) error
}

type outboxSink struct {
	repo  kafka.OutboxRepository
	topic string
}

// NewOutboxSink stores events in the outbox table for the worker to relay.
func NewOutboxSink(repo kafka.OutboxRepository, topic string) EventSink {
	if topic == "" {
		topic = events.LeaveLifecycleTopic
	}
	return &outboxSink{repo: repo, topic: topic}
}

func (s *outboxSink) WithTx(tx *sql.Tx) EventSink {
	return &outboxSink{repo: s.repo.WithTx(tx), topic: s.topic}
}

func (s *outboxSink) Publish(ctx context.Context, event events.LeaveEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal leave event: %w", err)
	}
	return s.repo.Create(ctx, kafka.OutboxEvent{
		ID:            event.EventID,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateTypeLeave,
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         s.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func newLeaveEvent(eventType string, l Leave, actorID string, managerID *uuid.UUID) events.LeaveEvent {
	evt := events.LeaveEvent{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		LeaveID:      l.ID.String(),
		CompanyID:    l.CompanyID.String(),
		EmployeeID:   l.EmployeeID.String(),
		PolicyID:     l.PolicyID.String(),
		ActorID:      actorID,
		Status:       l.Status,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		TotalDays:    l.TotalDays.String(),
		AutoRejected: l.AutoRejected,
		OccurredAt:   time.Now().UTC(),
	}
	if managerID != nil {
		evt.ManagerID = managerID.String()
	}
	if l.RejectionReason != nil {
		evt.RejectionReason = *l.RejectionReason
	}
	return evt
}
