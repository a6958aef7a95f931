package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/events"
	"lucia-hrms/internal/messaging/kafka"
	kafkaMock "lucia-hrms/internal/messaging/kafka/mock"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type captureAuditLogger struct {
	entries []activity.AuditLog
}

func (c *captureAuditLogger) Log(ctx context.Context, entry activity.AuditLog) {
	c.entries = append(c.entries, entry)
}

func sampleEvent() events.LeaveActivityEvent {
	return events.LeaveActivityEvent{
		EventType:  "leave_request_submitted",
		Action:     events.ActionLeaveSubmitted,
		EntityType: events.EntityLeaveRequest,
		EntityID:   "lr-1",
		ActorID:    "emp-1",
		EmployeeID: "emp-1",
		LeaveType:  "ANNUAL",
		Days:       decimal.NewFromInt(5),
		Status:     "PENDING",
	}
}

func TestOutboxRecorder_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	recorder := activity.NewOutboxRecorder(outbox)

	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.LeaveActivityTopic, e.Topic)
			assert.Equal(t, "lr-1", e.AggregateID)
			assert.Equal(t, events.EntityLeaveRequest, e.AggregateType)
			assert.Equal(t, "req-1", e.RequestID)
			assert.Equal(t, kafka.OutboxStatusPending, e.Status)

			var decoded events.LeaveActivityEvent
			assert.NoError(t, json.Unmarshal(e.Payload, &decoded))
			assert.Equal(t, events.ActionLeaveSubmitted, decoded.Action)
			assert.True(t, decoded.Days.Equal(decimal.NewFromInt(5)))
			assert.False(t, decoded.OccurredAt.IsZero())
			return nil
		})

	recorder.Record(ctx, sampleEvent())
}

func TestOutboxRecorder_RecordFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		activity.NewOutboxRecorder(outbox).Record(context.Background(), sampleEvent())
	})
}

func TestOutboxRecorder_SurvivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(writeCtx context.Context, _ kafka.OutboxEvent) error {
			assert.NoError(t, writeCtx.Err())
			return nil
		})

	activity.NewOutboxRecorder(outbox).Record(ctx, sampleEvent())
}

func TestAuditRecorder_Record(t *testing.T) {
	sink := &captureAuditLogger{}
	event := sampleEvent()
	event.OccurredAt = time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC)
	event.Comments = "family trip"

	activity.NewAuditRecorder(sink).Record(context.Background(), event)

	assert.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, events.ActionLeaveSubmitted, entry.Action)
	assert.Equal(t, "leave_request lr-1 by emp-1", entry.Message)
	assert.Equal(t, "5", entry.Meta["days"])
	assert.Equal(t, "ANNUAL", entry.Meta["leave_type"])
	assert.Equal(t, "family trip", entry.Meta["comments"])
	assert.Equal(t, "2024-02-15T08:00:00Z", entry.Meta["occurred_at"])
}
