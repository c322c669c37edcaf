package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/config"
	"gitlab.com/umaxship/console/internal/kafka"
	"gitlab.com/umaxship/console/internal/logger"
)

const defaultBroker = "localhost:9092"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		brokers = []string{defaultBroker}
	}

	log.Info("starting kafka consumer",
		zap.Strings("brokers", brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)

	reader := kafka.NewReader(kafka.ConsumerConfig{
		Brokers: brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})

	consumer := kafka.NewConsumer(reader, kafka.LogEvent(log), log)
	consumer.Run(ctx)

	log.Info("kafka consumer stopped")
}
