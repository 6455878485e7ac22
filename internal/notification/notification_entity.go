package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryLeave   = "LEAVE"
	CategoryCompOff = "COMP_OFF"
	CategorySystem  = "SYSTEM"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`

	Category string `gorm:"type:varchar(20);not null;default:'SYSTEM'" json:"category"`
	Title    string `gorm:"type:varchar(160);not null" json:"title"`
	Message  string `gorm:"type:text;not null" json:"message"`

	// ReferenceID menunjuk ke aggregate sumber (leave/comp-off request).
	// Dipakai untuk deduplikasi saat consumer memproses ulang message.
	ReferenceType *string `gorm:"type:varchar(40);index:idx_notification_reference" json:"reference_type,omitempty"`
	ReferenceID   *string `gorm:"type:varchar(64);index:idx_notification_reference" json:"reference_id,omitempty"`

	IsRead bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt *time.Time `gorm:"type:timestamptz" json:"read_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
