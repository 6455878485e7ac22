package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	ExistsByReference(ctx context.Context, recipientID, refType, refID string) (bool, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

// ExistsByReference dipakai consumer untuk skip message Kafka yang
// diproses lebih dari sekali (at-least-once delivery). ReferenceType
// diisi event type sehingga requested dan reviewed tidak saling dedup.
func (r *repository) ExistsByReference(ctx context.Context, recipientID, refType, refID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Notification{}, "id = ?", id).Error
}
