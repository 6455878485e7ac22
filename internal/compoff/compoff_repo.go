package compoff

import (
	"context"
	"database/sql"
	"time"

	"go-attendly/internal/leave"
	"go-attendly/internal/shared/scope"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *CompOffRequest) error
	FindAll(ctx context.Context) ([]CompOffRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]CompOffRequest, error)
	FindByID(ctx context.Context, id string) (*CompOffRequest, error)
	Update(ctx context.Context, c *CompOffRequest) error
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
	FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*CompOffRequest, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, c *CompOffRequest) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context) ([]CompOffRequest, error) {
	var rows []CompOffRequest
	err := r.db.WithContext(ctx).
		Order("applied_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]CompOffRequest, error) {
	var rows []CompOffRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Owner(employeeID)).
		Order("applied_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*CompOffRequest, error) {
	var c CompOffRequest
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *CompOffRequest) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Scopes(scope.Owner(employeeID)).
		Where("status = ?", leave.StatusApproved).
		Where("start_date <= ? AND end_date >= ?", date.Format("2006-01-02"), date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*CompOffRequest, error) {
	var c CompOffRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Owner(employeeID)).
		Where("status = ?", StatusApproved).
		Where("comp_off_date = ?", date.Format("2006-01-02")).
		First(&c).Error
	return &c, err
}
