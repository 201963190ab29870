package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// ContractFilter narrows contract list queries.
type ContractFilter struct {
	TeacherProfileID *uint
	StudentIDs       []uint
	Status           string
	Page             int
	PageSize         int
}

// ContractRepository handles persistence for contract sessions.
type ContractRepository interface {
	Create(ctx context.Context, contract *models.ContractSession) error
	GetByID(ctx context.Context, id uint) (models.ContractSession, error)
	Update(ctx context.Context, contract *models.ContractSession) error
	List(ctx context.Context, filter ContractFilter) ([]models.ContractSession, int64, error)
	ListExpiringBetween(ctx context.Context, from, until time.Time) ([]models.ContractSession, error)
	ListLowHours(ctx context.Context, threshold int) ([]models.ContractSession, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository constructs a repository backed by GORM.
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *models.ContractSession) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepository) GetByID(ctx context.Context, id uint) (models.ContractSession, error) {
	var contract models.ContractSession
	if err := r.db.WithContext(ctx).First(&contract, id).Error; err != nil {
		return models.ContractSession{}, err
	}
	return contract, nil
}

func (r *contractRepository) Update(ctx context.Context, contract *models.ContractSession) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *contractRepository) List(ctx context.Context, filter ContractFilter) ([]models.ContractSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractSession{})

	if filter.TeacherProfileID != nil {
		query = query.Where("teacher_profile_id = ?", *filter.TeacherProfileID)
	}

	if len(filter.StudentIDs) > 0 {
		query = query.Where("student_id IN ?", filter.StudentIDs)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var contracts []models.ContractSession
	if err := query.Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

func (r *contractRepository) ListExpiringBetween(ctx context.Context, from, until time.Time) ([]models.ContractSession, error) {
	var contracts []models.ContractSession
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.ContractStatusActive).
		Where("subscription_period_end IS NOT NULL").
		Where("subscription_period_end >= ? AND subscription_period_end < ?", from, until).
		Order("subscription_period_end ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) ListLowHours(ctx context.Context, threshold int) ([]models.ContractSession, error) {
	var contracts []models.ContractSession
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.ContractStatusActive).
		Where("billing_type = ?", models.BillingHourly).
		Where("remaining_hours < ?", threshold).
		Order("remaining_hours ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContractSession{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
