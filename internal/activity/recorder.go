package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lucia-hrms/internal/events"
	"lucia-hrms/internal/messaging/kafka"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder receives an event after the change it describes has committed.
// Recording is fire-and-forget: failures are logged and never reach the
// caller.
//
//go:generate mockgen -source=recorder.go -destination=mock/recorder_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, event events.LeaveActivityEvent)
}

type outboxRecorder struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewOutboxRecorder queues events in outbox_events for the worker binary to
// publish on events.LeaveActivityTopic.
func NewOutboxRecorder(outbox kafka.OutboxRepository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("activity.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.outbox")
	}
	return &outboxRecorder{outbox: outbox, logger: l}
}

func (r *outboxRecorder) Record(ctx context.Context, event events.LeaveActivityEvent) {
	event = stamp(ctx, event)
	logger := contextutil.GetLogger(ctx, r.logger)

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("marshal leave activity failed", zap.String("action", event.Action), zap.Error(err))
		return
	}

	// The request may already be finished; the outbox write must not be
	// cut short by its cancellation.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := r.outbox.Create(writeCtx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: event.EntityType,
		AggregateID:   event.EntityID,
		EventType:     event.EventType,
		Topic:         events.LeaveActivityTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		logger.Error("queue leave activity failed",
			zap.String("action", event.Action),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
		return
	}

	logger.Debug("leave activity queued", zap.String("action", event.Action), zap.String("entity_id", event.EntityID))
}

type auditRecorder struct {
	audit AuditLogger
}

// NewAuditRecorder writes events straight to the audit logger. It is used
// when no Kafka is deployed.
func NewAuditRecorder(audit AuditLogger) Recorder {
	return &auditRecorder{audit: audit}
}

func (r *auditRecorder) Record(ctx context.Context, event events.LeaveActivityEvent) {
	r.audit.Log(ctx, ToAuditLog(stamp(ctx, event)))
}

// ToAuditLog flattens an activity event into an audit entry.
func ToAuditLog(event events.LeaveActivityEvent) AuditLog {
	meta := map[string]any{
		"entity_type": event.EntityType,
		"entity_id":   event.EntityID,
		"actor_id":    event.ActorID,
		"employee_id": event.EmployeeID,
		"days":        event.Days.String(),
		"occurred_at": event.OccurredAt.Format(time.RFC3339),
	}
	if event.ActorRole != "" {
		meta["actor_role"] = event.ActorRole
	}
	if event.LeaveType != "" {
		meta["leave_type"] = event.LeaveType
	}
	if event.Status != "" {
		meta["status"] = event.Status
	}
	if event.Comments != "" {
		meta["comments"] = event.Comments
	}
	if event.RequestID != "" {
		meta["request_id"] = event.RequestID
	}

	return AuditLog{
		Action:  event.Action,
		Message: fmt.Sprintf("%s %s by %s", event.EntityType, event.EntityID, event.ActorID),
		Meta:    meta,
	}
}

func stamp(ctx context.Context, event events.LeaveActivityEvent) events.LeaveActivityEvent {
	if event.RequestID == "" {
		event.RequestID = contextutil.GetRequestID(ctx)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.EventType == "" {
		event.EventType = "leave_activity"
	}
	return event
}
