package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	FullName       string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role           string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	Department     *string   `gorm:"type:varchar(100)"`
	Position       *string   `gorm:"type:varchar(100)"`
	Phone          *string   `gorm:"type:varchar(30)"`
	IsVerified     bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
