package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hris-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveEventHandler interface {
	Handle(ctx context.Context, event events.LeaveEvent) error
}

type Options struct {
	// MaxAttempts bounds how often one message is handed to the handler
	// before the loop moves on without committing it.
	MaxAttempts int
	Backoff     time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = time.Second
	}
	return o
}

// ConsumeLeaveLifecycle applies leave side effects until ctx is done.
// Undecodable or unknown messages are committed and dropped.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler LeaveEventHandler,
	logger *zap.Logger,
	opts Options,
) {
	opts = opts.withDefaults()
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave event failed",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			commit(ctx, reader, msg, log)
			continue
		}

		if !isLeaveEvent(event.EventType) {
			log.Warn("skip unknown leave event type", zap.String("event_type", event.EventType))
			commit(ctx, reader, msg, log)
			continue
		}

		if err := handle(ctx, handler, event, opts); err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("apply leave side effects failed, leaving uncommitted",
				zap.String("event_id", event.EventID),
				zap.String("leave_id", event.LeaveID),
				zap.Int("attempts", opts.MaxAttempts),
				zap.Error(err),
			)
			continue
		}

		if commit(ctx, reader, msg, log) {
			log.Info("leave side effects applied",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
				zap.String("leave_id", event.LeaveID),
			)
		}
	}
}

func handle(ctx context.Context, handler LeaveEventHandler, event events.LeaveEvent, opts Options) error {
	var err error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err = handler.Handle(ctx, event); err == nil {
			return nil
		}
		if attempt == opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.Backoff * time.Duration(attempt)):
		}
	}
	return err
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave lifecycle message failed", zap.Error(err))
		return false
	}
	return true
}

func isLeaveEvent(eventType string) bool {
	return eventType == events.LeaveSubmittedEventType || eventType == events.LeaveDecidedEventType
}
