package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindByYear(ctx context.Context, year int) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	FindByDate(ctx context.Context, date time.Time) (*Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).Order("date ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByYear(ctx context.Context, year int) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?",
			time.Date(year, 1, 1, 0, 0, 0, 0, time.Local).Format("2006-01-02"),
			time.Date(year+1, 1, 1, 0, 0, 0, 0, time.Local).Format("2006-01-02"),
		).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		First(&h).Error
	return &h, err
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
