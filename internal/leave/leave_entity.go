package leave

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

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_employee_dates" json:"employee_id"`

	LeaveType string    `gorm:"type:varchar(20);not null" json:"leave_type"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_employee_dates" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_employee_dates" json:"end_date"`
	TotalDays int       `gorm:"type:int;not null;default:1" json:"total_days"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	AppliedAt       time.Time  `gorm:"type:timestamptz;not null" json:"applied_at"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"type:timestamptz" json:"reviewed_at,omitempty"`
	ReviewerComment *string    `gorm:"type:text" json:"reviewer_comment,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
