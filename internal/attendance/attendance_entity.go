package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_attendance_employee_date,unique" json:"employee_id"`
	AttendanceDate    time.Time  `gorm:"type:date;not null;index:idx_attendance_employee_date,unique" json:"attendance_date"`
	CheckIn           time.Time  `gorm:"type:timestamptz;not null" json:"check_in"`
	CheckOut          *time.Time `gorm:"type:timestamptz" json:"check_out,omitempty"`
	HoursWorked       float64    `gorm:"type:numeric(5,2);not null;default:0" json:"hours_worked"`
	BreakStart        *time.Time `gorm:"type:timestamptz" json:"break_start,omitempty"`
	TotalBreakMinutes int        `gorm:"not null;default:0" json:"total_break_minutes"`
	IsOnBreak         bool       `gorm:"not null;default:false" json:"is_on_break"`
	HasUsedBreak      bool       `gorm:"not null;default:false" json:"has_used_break"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}
