package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// handlerFunc returns errSkip for messages that can never be processed, so
// they are committed instead of redelivered forever.
type handlerFunc func(ctx context.Context, msg kafkago.Message) error

// run fetches until ctx is cancelled. A message whose handler fails is left
// uncommitted and is redelivered after a rebalance or restart.
func run(ctx context.Context, reader MessageReader, log *zap.Logger, handle handlerFunc) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil {
			if !isSkip(err) {
				log.Error("handle message failed",
					zap.Int64("offset", msg.Offset),
					zap.Int("partition", msg.Partition),
					zap.Error(err),
				)
				continue
			}
			log.Warn("skipping message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}
