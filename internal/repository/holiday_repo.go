package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// HolidayRepository handles persistence for school holidays.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id uint) error
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
}

type holidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository constructs a repository backed by GORM.
func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Holiday{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}
