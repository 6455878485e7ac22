package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-attendly/internal/notification/errors"
	"go-attendly/internal/shared/fallback"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fallbackEntity = "notifications"

type Service interface {
	Create(ctx context.Context, input CreateNotificationInput) (NotificationResponse, error)
	GetAllByRecipient(ctx context.Context, recipientID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, actorID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, actorID string) error
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	repo   Repository
	fb     fallback.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, fb fallback.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, fb: fb, logger: l, now: time.Now}
}

// Create dipanggil oleh consumer Kafka, bukan dari HTTP handler.
// Duplikat (recipient + reference) di-skip diam-diam supaya consumer
// aman memproses ulang message yang sama.
func (s *service) Create(ctx context.Context, input CreateNotificationInput) (NotificationResponse, error) {
	recipientUUID, err := uuid.Parse(input.RecipientID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidRecipientID
	}

	row := &Notification{
		ID:            uuid.New(),
		RecipientID:   recipientUUID,
		Category:      input.Category,
		Title:         input.Title,
		Message:       input.Message,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
	}
	if row.Category == "" {
		row.Category = CategorySystem
	}

	if input.ReferenceType != nil && input.ReferenceID != nil {
		exists, err := s.repo.ExistsByReference(ctx, input.RecipientID, *input.ReferenceType, *input.ReferenceID)
		if err != nil {
			// Dedup tidak bisa diverifikasi; simpan dulu, duplikat
			// dibereskan saat sinkronisasi.
			s.logger.Error("notification dedup check failed", zap.Error(err))
			return s.fallbackWrite(ctx, row), nil
		}
		if exists {
			s.logger.Debug("duplicate notification skipped",
				zap.String("recipient_id", input.RecipientID),
				zap.Stringp("reference_id", input.ReferenceID),
			)
			return NotificationResponse{}, nil
		}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create notification persist failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	return mapToResponse(*row), nil
}

// fallbackWrite menyimpan notifikasi ke fallback store saat primary DB
// mati, supaya consumer tetap bisa commit offset.
func (s *service) fallbackWrite(ctx context.Context, row *Notification) NotificationResponse {
	recipientID := row.RecipientID.String()
	s.logger.Warn("primary store unavailable, writing notification to fallback",
		zap.String("recipient_id", recipientID),
		zap.String("notification_id", row.ID.String()),
	)

	if err := s.fb.Append(ctx, fallback.Key(fallbackEntity, recipientID), row); err != nil {
		s.logger.Error("fallback append failed", zap.Error(err))
	}
	if err := s.fb.Append(ctx, fallback.AllKey(fallbackEntity), row); err != nil {
		s.logger.Error("fallback append (all) failed", zap.Error(err))
	}

	resp := mapToResponse(*row)
	resp.PendingSync = true
	return resp
}

func (s *service) GetAllByRecipient(ctx context.Context, recipientID string) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(recipientID); err != nil {
		return nil, notificationerrors.ErrInvalidRecipientID
	}

	rows, err := s.repo.FindAllByRecipient(ctx, recipientID)
	if err != nil {
		s.logger.Error("get notifications failed, reading fallback", zap.Error(err))
		rows = nil
		if fbErr := s.fb.List(ctx, fallback.Key(fallbackEntity, recipientID), &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.Error(fbErr))
		}
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, actorID, id string) (NotificationResponse, error) {
	row, err := s.ownedByActor(ctx, actorID, id)
	if err != nil {
		return NotificationResponse{}, err
	}

	if !row.IsRead {
		now := s.now()
		row.IsRead = true
		row.ReadAt = &now
		if err := s.repo.Update(ctx, row); err != nil {
			s.logger.Error("mark read persist failed", zap.Error(err))
			return NotificationResponse{}, err
		}
	}
	return mapToResponse(*row), nil
}

func (s *service) MarkAllRead(ctx context.Context, actorID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}
	return s.repo.MarkAllRead(ctx, actorID, s.now())
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedByActor(ctx, actorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ownedByActor(ctx context.Context, actorID, id string) (*Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notificationerrors.ErrInvalidNotificationID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationerrors.ErrNotificationNotFound
		}
		return nil, err
	}
	if row.RecipientID.String() != actorID {
		return nil, notificationerrors.ErrNotRecipient
	}
	return row, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:            n.ID.String(),
		RecipientID:   n.RecipientID.String(),
		Category:      n.Category,
		Title:         n.Title,
		Message:       n.Message,
		ReferenceType: n.ReferenceType,
		ReferenceID:   n.ReferenceID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
