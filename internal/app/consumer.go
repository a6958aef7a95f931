package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/config"
	"lucia-hrms/internal/directory"
	"lucia-hrms/internal/events"
	"lucia-hrms/internal/leavebalance"
	"lucia-hrms/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const employeeLifecycleGroupSuffix = "-employee-lifecycle"

// RunConsumer runs the leave activity and employee lifecycle consumers until
// SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	infra, err := connect(cfg, true)
	if err != nil {
		return err
	}
	defer infra.Close()

	policy, err := leavebalance.LoadPolicy(cfg.LeavePolicyFile)
	if err != nil {
		return err
	}
	policy = policy.WithMode(cfg.InsufficientBalance)

	// Events are already in the audit trail once consumed, so balance
	// initialization here records nothing further.
	audit := activity.NewStdoutAuditLogger()
	directoryService := directory.NewService(directory.NewRepository(infra.gormDB), infra.redis)
	balanceRepo := leavebalance.NewRepository(infra.gormDB)
	balanceService := leavebalance.NewService(
		infra.db,
		leavebalance.NewLedger(balanceRepo, policy),
		balanceRepo,
		directoryService,
		activity.NewAuditRecorder(audit),
	)

	activityReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveActivityTopic,
		GroupID:        cfg.ConsumerGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer activityReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        cfg.ConsumerGroupID + employeeLifecycleGroupSuffix,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeLeaveActivity(ctx, activityReader, audit, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, directoryService, balanceService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
