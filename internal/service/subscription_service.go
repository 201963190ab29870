package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

// SubscriptionService manages parent-paid subscriptions. Creation is
// admin-side; parents only read their own.
type SubscriptionService interface {
	Create(ctx context.Context, actor Actor, payload dto.SubscriptionCreateRequest) (dto.SubscriptionResponse, error)
	List(ctx context.Context, filter repository.SubscriptionFilter) ([]dto.SubscriptionResponse, error)
	ListForParent(ctx context.Context, parentUserID uint) ([]dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	students      repository.StudentRepository
	validator     *validator.Validate
	logger        zerolog.Logger
	now           func() time.Time
}

// NewSubscriptionService builds the subscription service.
func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	students repository.StudentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionService{
		subscriptions: subscriptions,
		students:      students,
		validator:     validate,
		logger:        logger.With().Str("component", "subscription_service").Logger(),
		now:           time.Now,
	}
}

func (s *subscriptionService) Create(ctx context.Context, actor Actor, payload dto.SubscriptionCreateRequest) (dto.SubscriptionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubscriptionResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubscriptionResponse{}, ErrStudentNotFound
		}
		return dto.SubscriptionResponse{}, err
	}
	if student.ParentUserID != payload.ParentUserID {
		return dto.SubscriptionResponse{}, &BusinessError{
			Code:    "INVALID_STATUS",
			Message: fmt.Sprintf("student %d does not belong to parent %d", payload.StudentID, payload.ParentUserID),
		}
	}

	periodEnd, err := time.Parse(time.RFC3339, payload.PeriodEnd)
	if err != nil {
		return dto.SubscriptionResponse{}, fmt.Errorf("invalid period end: %w", err)
	}
	periodEndUTC := periodEnd.UTC()

	subscription := models.Subscription{
		ParentUserID: payload.ParentUserID,
		StudentID:    payload.StudentID,
		Kind:         payload.Kind,
		PeriodEnd:    &periodEndUTC,
		Status:       models.ContractStatusActive,
	}
	if err := s.subscriptions.Create(ctx, &subscription); err != nil {
		return dto.SubscriptionResponse{}, err
	}

	s.logger.Info().
		Uint("subscription_id", subscription.ID).
		Uint("actor_id", actor.ID).
		Uint("student_id", subscription.StudentID).
		Msg("subscription created")
	return dto.NewSubscriptionResponse(subscription, s.now().UTC()), nil
}

func (s *subscriptionService) List(ctx context.Context, filter repository.SubscriptionFilter) ([]dto.SubscriptionResponse, error) {
	subscriptions, err := s.subscriptions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponseSlice(subscriptions, s.now().UTC()), nil
}

func (s *subscriptionService) ListForParent(ctx context.Context, parentUserID uint) ([]dto.SubscriptionResponse, error) {
	return s.List(ctx, repository.SubscriptionFilter{ParentUserID: &parentUserID})
}
