package consumer

import (
	"context"
	"encoding/json"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/events"
	"lucia-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveActivity forwards every leave activity event to the audit
// logger.
func ConsumeLeaveActivity(
	ctx context.Context,
	reader MessageReader,
	audit activity.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_activity")
	log.Info("leave activity consumer started")

	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return handleLeaveActivity(ctx, msg, audit)
	})
}

func handleLeaveActivity(ctx context.Context, msg kafkago.Message, audit activity.AuditLogger) error {
	var event events.LeaveActivityEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return skip("decode leave activity event", err)
	}
	if event.Action == "" || event.EntityID == "" {
		return skip("leave activity event without action or entity", nil)
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	audit.Log(ctx, activity.ToAuditLog(event))
	return nil
}
