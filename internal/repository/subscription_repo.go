package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// SubscriptionFilter narrows subscription list queries.
type SubscriptionFilter struct {
	ParentUserID *uint
	StudentID    *uint
	Status       string
}

// SubscriptionRepository handles persistence for parent-paid subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByID(ctx context.Context, id uint) (models.Subscription, error)
	Update(ctx context.Context, subscription *models.Subscription) error
	List(ctx context.Context, filter SubscriptionFilter) ([]models.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository constructs a repository backed by GORM.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id uint) (models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.WithContext(ctx).First(&subscription, id).Error; err != nil {
		return models.Subscription{}, err
	}
	return subscription, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Save(subscription).Error
}

func (r *subscriptionRepository) List(ctx context.Context, filter SubscriptionFilter) ([]models.Subscription, error) {
	query := r.db.WithContext(ctx).Model(&models.Subscription{})

	if filter.ParentUserID != nil {
		query = query.Where("parent_user_id = ?", *filter.ParentUserID)
	}

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var subscriptions []models.Subscription
	if err := query.Order("created_at DESC").Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}
