package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeNational = "NATIONAL"
	TypeRegional = "REGIONAL"
	TypeCompany  = "COMPANY"
)

type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:varchar(120);not null" json:"name"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex:uniq_holiday_date" json:"date"`

	HolidayType string  `gorm:"type:varchar(20);not null;default:'NATIONAL'" json:"holiday_type"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	IsOptional  bool    `gorm:"not null;default:false" json:"is_optional"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Holiday) TableName() string {
	return "holidays"
}
