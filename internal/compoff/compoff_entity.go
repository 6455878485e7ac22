package compoff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// CompOffRequest mencatat permintaan libur pengganti: kerja di WorkDate
// (biasanya weekend atau hari libur), diganti libur di CompOffDate.
type CompOffRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_compoff_employee_dates" json:"employee_id"`

	WorkDate    time.Time `gorm:"type:date;not null" json:"work_date"`
	CompOffDate time.Time `gorm:"type:date;not null;index:idx_compoff_employee_dates" json:"comp_off_date"`
	Reason      string    `gorm:"type:text;not null" json:"reason"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	AppliedAt       time.Time  `gorm:"type:timestamptz;not null" json:"applied_at"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"type:timestamptz" json:"reviewed_at,omitempty"`
	ReviewerComment *string    `gorm:"type:text" json:"reviewer_comment,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CompOffRequest) TableName() string {
	return "comp_off_requests"
}
