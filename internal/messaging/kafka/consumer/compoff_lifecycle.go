package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-attendly/internal/employee"
	"go-attendly/internal/events"
	"go-attendly/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCompOffRequested mem-fan-out pengajuan libur pengganti baru ke
// semua admin.
func ConsumeCompOffRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeRepo employee.Repository,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.compoff_requested")
	log.Info("comp-off requested consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("comp-off requested consumer stopped")
				return
			}
			log.Error("fetch comp-off requested message failed", zap.Error(err))
			continue
		}

		var event events.CompOffRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode comp-off requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		adminIDs, err := employeeRepo.FindAdminIDs(ctx)
		if err != nil {
			log.Error("list admins failed", zap.Error(err))
			continue
		}

		failed := false
		for _, adminID := range adminIDs {
			_, err := notificationService.Create(ctx, notification.CreateNotificationInput{
				RecipientID: adminID,
				Category:    notification.CategoryCompOff,
				Title:       "New comp-off request",
				Message: fmt.Sprintf("Comp-off requested for %s against work on %s",
					event.CompOffDate, event.WorkDate),
				ReferenceType: strPtr(event.EventType),
				ReferenceID:   strPtr(event.CompOffID),
			})
			if err != nil {
				log.Error("notify admin failed",
					zap.String("compoff_id", event.CompOffID),
					zap.String("admin_id", adminID),
					zap.Error(err),
				)
				failed = true
			}
		}
		if failed {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit comp-off requested message failed", zap.Error(err))
			continue
		}

		log.Info("admins notified of comp-off request",
			zap.String("compoff_id", event.CompOffID),
			zap.Int("admin_count", len(adminIDs)),
		)
	}
}

// ConsumeCompOffReviewed memberi tahu pemohon hasil review-nya.
func ConsumeCompOffReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.compoff_reviewed")
	log.Info("comp-off reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("comp-off reviewed consumer stopped")
				return
			}
			log.Error("fetch comp-off reviewed message failed", zap.Error(err))
			continue
		}

		var event events.CompOffReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode comp-off reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := fmt.Sprintf("Your comp-off request was %s", event.Status)
		if event.ReviewerComment != nil && *event.ReviewerComment != "" {
			message += ": " + *event.ReviewerComment
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationInput{
			RecipientID:   event.EmployeeID,
			Category:      notification.CategoryCompOff,
			Title:         "Comp-off request reviewed",
			Message:       message,
			ReferenceType: strPtr(event.EventType),
			ReferenceID:   strPtr(event.CompOffID),
		})
		if err != nil {
			log.Error("notify requester failed",
				zap.String("compoff_id", event.CompOffID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit comp-off reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("requester notified of comp-off review",
			zap.String("compoff_id", event.CompOffID),
			zap.String("status", event.Status),
		)
	}
}
