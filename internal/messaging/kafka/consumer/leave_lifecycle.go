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

func strPtr(s string) *string { return &s }

// ConsumeLeaveRequested mem-fan-out setiap pengajuan cuti baru ke semua
// admin agar muncul di inbox review mereka.
func ConsumeLeaveRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeRepo employee.Repository,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_requested")
	log.Info("leave requested consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave requested consumer stopped")
				return
			}
			log.Error("fetch leave requested message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave requested event failed", zap.Error(err))
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
				Category:    notification.CategoryLeave,
				Title:       "New leave request",
				Message: fmt.Sprintf("A %s leave was requested for %s to %s",
					event.LeaveType, event.StartDate, event.EndDate),
				ReferenceType: strPtr(event.EventType),
				ReferenceID:   strPtr(event.LeaveID),
			})
			if err != nil {
				log.Error("notify admin failed",
					zap.String("leave_id", event.LeaveID),
					zap.String("admin_id", adminID),
					zap.Error(err),
				)
				failed = true
			}
		}
		if failed {
			// Tidak di-commit: message diproses ulang, duplikat di-skip
			// oleh dedup reference di notification service.
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave requested message failed", zap.Error(err))
			continue
		}

		log.Info("admins notified of leave request",
			zap.String("leave_id", event.LeaveID),
			zap.Int("admin_count", len(adminIDs)),
		)
	}
}

// ConsumeLeaveReviewed memberi tahu pemohon bahwa request-nya sudah
// direview.
func ConsumeLeaveReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_reviewed")
	log.Info("leave reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave reviewed consumer stopped")
				return
			}
			log.Error("fetch leave reviewed message failed", zap.Error(err))
			continue
		}

		var event events.LeaveReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := fmt.Sprintf("Your leave request was %s", event.Status)
		if event.ReviewerComment != nil && *event.ReviewerComment != "" {
			message += ": " + *event.ReviewerComment
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationInput{
			RecipientID:   event.EmployeeID,
			Category:      notification.CategoryLeave,
			Title:         "Leave request reviewed",
			Message:       message,
			ReferenceType: strPtr(event.EventType),
			ReferenceID:   strPtr(event.LeaveID),
		})
		if err != nil {
			log.Error("notify requester failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("requester notified of leave review",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}
