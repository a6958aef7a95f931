package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"lucia-hrms/internal/messaging/kafka"
	kafkaMock "lucia-hrms/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failTopic: "broken.topic"}
	ctx := context.Background()

	repo.EXPECT().ClaimPending(ctx, batchSize, claimLease).Return([]kafka.OutboxEvent{
		{ID: "ob-1", RequestID: "req-1", AggregateType: "leave_request", AggregateID: "lr-1", EventType: "leave_request_submitted", Topic: "hr.leave.activity.v1", Payload: []byte(`{}`)},
		{ID: "ob-2", AggregateType: "leave_request", AggregateID: "lr-2", EventType: "leave_activity", Topic: "broken.topic", Payload: []byte(`{}`)},
	}, nil)
	repo.EXPECT().MarkSent(ctx, "ob-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "ob-2", "broker unavailable").Return(nil)

	err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, "lr-1", string(msg.Key))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "outbox_id", Value: []byte("ob-1")})
}

func TestToMessage(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	msg := toMessage(kafka.OutboxEvent{
		ID:          "ob-9",
		AggregateID: "lr-9",
		EventType:   "LEAVE_FINAL_APPROVED",
		Topic:       "hr.leave.activity.v1",
		Payload:     []byte(`{"status":"FINAL_APPROVED"}`),
		RetryCount:  3,
		CreatedAt:   created,
	})

	assert.Equal(t, "lr-9", string(msg.Key))
	assert.True(t, created.Equal(msg.Time))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "attempt", Value: []byte("4")})
	for _, h := range msg.Headers {
		assert.NotEqual(t, "request_id", h.Key, "empty request id is not sent")
	}
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ClaimPending(gomock.Any(), batchSize, gomock.Any()).Return(nil, errors.New("db down"))

	err := processPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
}
