package consumer

import (
	"context"
	"encoding/json"
	"time"

	"lucia-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DirectoryCache is satisfied by directory.Service.
type DirectoryCache interface {
	Invalidate(ctx context.Context, employeeID string) error
}

// BalanceInitializer is satisfied by leavebalance.Service.
type BalanceInitializer interface {
	InitializeYear(ctx context.Context, employeeID string, year int) error
}

// ConsumeEmployeeLifecycle keeps the leave engine in step with the employee
// service: cached directory entries are dropped on every change and a new
// employee gets the current year's default balances straight away.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	directory DirectoryCache,
	balances BalanceInitializer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return handleEmployeeLifecycle(ctx, msg, directory, balances, log)
	})
}

func handleEmployeeLifecycle(
	ctx context.Context,
	msg kafkago.Message,
	directory DirectoryCache,
	balances BalanceInitializer,
	log *zap.Logger,
) error {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return skip("decode employee lifecycle event", err)
	}
	if event.EmployeeID == "" {
		return skip("employee lifecycle event without employee_id", nil)
	}

	if err := directory.Invalidate(ctx, event.EmployeeID); err != nil {
		log.Warn("invalidate directory cache failed", zap.String("employee_id", event.EmployeeID), zap.Error(err))
	}

	if event.EventType != events.EmployeeCreated {
		return nil
	}

	year := event.OccurredAt.UTC().Year()
	if event.OccurredAt.IsZero() {
		year = time.Now().UTC().Year()
	}

	// Initialization is idempotent, so a redelivered event is harmless.
	if err := balances.InitializeYear(ctx, event.EmployeeID, year); err != nil {
		return err
	}

	log.Info("leave balances initialized from employee_created event",
		zap.String("employee_id", event.EmployeeID),
		zap.Int("year", year),
	)
	return nil
}
