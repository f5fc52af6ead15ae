package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hris-leave/internal/config"
	"go-hris-leave/internal/leave"
	"go-hris-leave/internal/messaging/kafka/consumer"
	"go-hris-leave/internal/notification"
	"go-hris-leave/internal/shared/connection"
	"go-hris-leave/internal/timeline"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer applies timeline and notification side effects of leave
// lifecycle events until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	sideEffects := leave.NewSideEffects(
		timeline.NewService(timeline.NewRepository(gormDB)),
		notification.NewService(notification.NewRepository(gormDB)),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.LeaveTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeLeaveLifecycle(ctx, reader, sideEffects, logger, consumer.Options{})
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
