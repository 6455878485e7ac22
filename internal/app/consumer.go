package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-attendly/internal/employee"
	"go-attendly/internal/events"
	"go-attendly/internal/messaging/kafka/consumer"
	"go-attendly/internal/notification"
	"go-attendly/internal/shared/connection"
	"go-attendly/internal/shared/fallback"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer menjalankan empat consumer lifecycle: leave/comp-off
// requested (fan-out ke admin) dan reviewed (notifikasi ke pemohon).
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	employeeRepo := employee.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, fallback.NewStore(rdb))

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "go-attendly-notifications",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	leaveRequestedReader := newReader(events.LeaveRequestedTopic)
	defer leaveRequestedReader.Close()
	leaveReviewedReader := newReader(events.LeaveReviewedTopic)
	defer leaveReviewedReader.Close()
	compoffRequestedReader := newReader(events.CompOffRequestedTopic)
	defer compoffRequestedReader.Close()
	compoffReviewedReader := newReader(events.CompOffReviewedTopic)
	defer compoffReviewedReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveRequested(ctx, leaveRequestedReader, employeeRepo, notificationService, logger)
	go consumer.ConsumeLeaveReviewed(ctx, leaveReviewedReader, notificationService, logger)
	go consumer.ConsumeCompOffRequested(ctx, compoffRequestedReader, employeeRepo, notificationService, logger)
	go consumer.ConsumeCompOffReviewed(ctx, compoffReviewedReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
