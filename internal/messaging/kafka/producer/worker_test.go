package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/messaging/kafka/mock"
	"go-hris-leave/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failFor  map[string]bool
	messages []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestPublishPending(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and marks each event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		pending := []kafka.OutboxEvent{
			{ID: "evt-1", AggregateType: "leave", AggregateID: "leave-1", EventType: "leave_submitted", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`), RequestID: "req-1"},
			{ID: "evt-2", AggregateType: "leave", AggregateID: "leave-2", EventType: "leave_decided", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`)},
		}
		repo.EXPECT().ListPending(ctx, 50).Return(pending, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.PublishPending(ctx, repo, writer, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, writer.messages, 2)
		assert.Equal(t, "leave-1", string(writer.messages[0].Key))
		assert.Equal(t, "hr.leave.lifecycle.v1", writer.messages[0].Topic)

		var headers = map[string]string{}
		for _, h := range writer.messages[0].Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "leave_submitted", headers["event_type"])
		assert.Equal(t, "evt-1", headers["event_id"])
		assert.Equal(t, "req-1", headers["request_id"])
	})

	t.Run("failed publish is rescheduled and the batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"leave-1": true}}

		bad := kafka.OutboxEvent{ID: "evt-1", AggregateID: "leave-1", Topic: "t", Payload: []byte(`{}`), RetryCount: 2}
		good := kafka.OutboxEvent{ID: "evt-2", AggregateID: "leave-2", Topic: "t", Payload: []byte(`{}`)}
		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{bad, good}, nil)
		repo.EXPECT().MarkFailed(ctx, bad, "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.PublishPending(ctx, repo, writer, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.PublishPending(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestNextRetryDelay(t *testing.T) {
	assert.Equal(t, kafka.NextRetryDelay(1), kafka.NextRetryDelay(0))
	assert.Less(t, kafka.NextRetryDelay(1), kafka.NextRetryDelay(2))
	assert.Equal(t, kafka.NextRetryDelay(10), kafka.NextRetryDelay(50))
}
