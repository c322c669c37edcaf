package kafka

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/repository"
)

const readRetryDelay = 5 * time.Second

type Reader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

type Handler func(ctx context.Context, event repository.EventPayload, msg kafkago.Message) error

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Consumer reads console events and hands each decoded event to a handler.
// Messages that do not decode are logged and skipped.
type Consumer struct {
	reader  Reader
	handler Handler
	logger  *zap.Logger
}

func NewReader(cfg ConsumerConfig) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
}

func NewConsumer(reader Reader, handler Handler, logger *zap.Logger) *Consumer {
	return &Consumer{reader: reader, handler: handler, logger: logger}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Error("error closing kafka reader", zap.Error(err))
		}
	}()

	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer context cancelled, exiting message loop")
				return
			}
			c.logger.Error("error reading message", zap.Error(err))
			select {
			case <-time.After(readRetryDelay):
				continue
			case <-ctx.Done():
				return
			}
		}

		var event repository.EventPayload
		if err := json.Unmarshal(m.Value, &event); err != nil {
			c.logger.Warn("skipping undecodable event",
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.handler(ctx, event, m); err != nil {
			c.logger.Error("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
		}
	}
}

// LogEvent is a Handler that records each event in the log.
func LogEvent(logger *zap.Logger) Handler {
	return func(_ context.Context, event repository.EventPayload, msg kafkago.Message) error {
		logger.Info("console event",
			zap.String("type", string(event.Type)),
			zap.String("entity_type", event.EntityType),
			zap.String("entity_id", event.EntityID),
			zap.String("user_id", event.UserID),
			zap.String("old_status", event.OldStatus),
			zap.String("new_status", event.NewStatus),
			zap.Time("event_time", event.Timestamp),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		return nil
	}
}
