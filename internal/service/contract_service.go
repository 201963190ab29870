package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

// ContractService exposes contract administration and read use cases.
type ContractService interface {
	Create(ctx context.Context, payload dto.ContractCreateRequest) (dto.ContractResponse, error)
	Get(ctx context.Context, id uint) (dto.ContractResponse, error)
	List(ctx context.Context, filter repository.ContractFilter) ([]dto.ContractResponse, int64, error)
	ListForParent(ctx context.Context, parentUserID uint) ([]dto.ContractResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id uint, payload dto.ContractStatusRequest) (dto.ContractResponse, error)
	Renew(ctx context.Context, id uint, payload dto.ContractRenewRequest) (dto.ContractResponse, error)
	AdjustPool(ctx context.Context, actor Actor, id uint, payload dto.ContractAdjustHoursRequest) (dto.ContractResponse, error)
}

type contractService struct {
	contracts    repository.ContractRepository
	students     repository.StudentRepository
	users        repository.UserRepository
	notifier     NotificationFanout
	audit        AuditRecorder
	validator    *validator.Validate
	expiryWindow time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewContractService builds the contract service. expiryAlertDays configures
// the "ending soon" admin alert written at creation time.
func NewContractService(
	contracts repository.ContractRepository,
	students repository.StudentRepository,
	users repository.UserRepository,
	notifier NotificationFanout,
	audit AuditRecorder,
	validate *validator.Validate,
	expiryAlertDays int,
	logger zerolog.Logger,
) ContractService {
	return &contractService{
		contracts:    contracts,
		students:     students,
		users:        users,
		notifier:     notifier,
		audit:        audit,
		validator:    validate,
		expiryWindow: time.Duration(expiryAlertDays) * 24 * time.Hour,
		logger:       logger.With().Str("component", "contract_service").Logger(),
		now:          time.Now,
	}
}

func (s *contractService) Create(ctx context.Context, payload dto.ContractCreateRequest) (dto.ContractResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContractResponse{}, err
	}

	teacher, err := s.users.GetTeacherByID(ctx, payload.TeacherProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrTeacherNotFound
		}
		return dto.ContractResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrStudentNotFound
		}
		return dto.ContractResponse{}, err
	}

	periodEnd, err := time.Parse(time.RFC3339, payload.SubscriptionPeriodEnd)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("invalid subscription period end: %w", err)
	}
	periodEnd = periodEnd.UTC()

	now := s.now().UTC()
	startDate := now
	if payload.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, payload.StartDate)
		if err != nil {
			return dto.ContractResponse{}, fmt.Errorf("invalid start date: %w", err)
		}
		startDate = parsed.UTC()
	}

	contract := models.ContractSession{
		Code:                  contractCode(),
		TeacherProfileID:      payload.TeacherProfileID,
		StudentID:             payload.StudentID,
		BillingType:           payload.BillingType,
		PackageHours:          payload.PackageHours,
		RemainingHours:        payload.PackageHours,
		SubscriptionPeriodEnd: &periodEnd,
		Status:                models.ContractStatusActive,
		StartDate:             startDate,
	}

	if err := s.contracts.Create(ctx, &contract); err != nil {
		return dto.ContractResponse{}, err
	}

	if err := s.notifier.NotifyContractCreated(ctx, teacher.UserID, contract); err != nil {
		s.logger.Warn().Err(err).Uint("contract_id", contract.ID).Msg("failed to notify teacher about new contract")
	}

	// The "ending soon" admin alert is written once, at creation time only;
	// the continuous view comes from derived notifications.
	if periodEnd.Before(now.Add(s.expiryWindow)) {
		if err := s.notifier.NotifyContractExpiring(ctx, contract); err != nil {
			s.logger.Warn().Err(err).Uint("contract_id", contract.ID).Msg("failed to notify admins about expiring contract")
		}
	}

	s.logger.Info().Uint("contract_id", contract.ID).Str("code", contract.Code).Msg("contract created")
	return dto.NewContractResponse(contract, now), nil
}

func (s *contractService) Get(ctx context.Context, id uint) (dto.ContractResponse, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrContractNotFound
		}
		return dto.ContractResponse{}, err
	}
	return dto.NewContractResponse(contract, s.now().UTC()), nil
}

func (s *contractService) List(ctx context.Context, filter repository.ContractFilter) ([]dto.ContractResponse, int64, error) {
	contracts, total, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.NewContractResponseSlice(contracts, s.now().UTC()), total, nil
}

func (s *contractService) ListForParent(ctx context.Context, parentUserID uint) ([]dto.ContractResponse, error) {
	students, err := s.students.ListByParent(ctx, parentUserID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []dto.ContractResponse{}, nil
	}

	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}

	contracts, _, err := s.contracts.List(ctx, repository.ContractFilter{StudentIDs: ids})
	if err != nil {
		return nil, err
	}
	return dto.NewContractResponseSlice(contracts, s.now().UTC()), nil
}

func (s *contractService) UpdateStatus(ctx context.Context, actor Actor, id uint, payload dto.ContractStatusRequest) (dto.ContractResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContractResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrContractNotFound
		}
		return dto.ContractResponse{}, err
	}

	oldStatus := contract.Status
	contract.Status = payload.Status
	if payload.Status == models.ContractStatusCancelled || payload.Status == models.ContractStatusCompleted {
		endDate := s.now().UTC()
		contract.EndDate = &endDate
	}

	if err := s.contracts.Update(ctx, &contract); err != nil {
		return dto.ContractResponse{}, err
	}

	contractRef := contract.ID
	if err := s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.AuditStatusChange,
		EntityType: "contract_session",
		EntityID:   &contractRef,
		Metadata: map[string]interface{}{
			"old_status": oldStatus,
			"new_status": payload.Status,
			"reason":     payload.Reason,
		},
	}); err != nil {
		return dto.ContractResponse{}, err
	}

	return dto.NewContractResponse(contract, s.now().UTC()), nil
}

func (s *contractService) Renew(ctx context.Context, id uint, payload dto.ContractRenewRequest) (dto.ContractResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContractResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrContractNotFound
		}
		return dto.ContractResponse{}, err
	}

	periodEnd, err := time.Parse(time.RFC3339, payload.SubscriptionPeriodEnd)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("invalid subscription period end: %w", err)
	}
	utc := periodEnd.UTC()

	contract.SubscriptionPeriodEnd = &utc
	if contract.Status == models.ContractStatusExpired {
		contract.Status = models.ContractStatusActive
	}

	if err := s.contracts.Update(ctx, &contract); err != nil {
		return dto.ContractResponse{}, err
	}

	s.logger.Info().Uint("contract_id", contract.ID).Time("period_end", utc).Msg("contract renewed")
	return dto.NewContractResponse(contract, s.now().UTC()), nil
}

func (s *contractService) AdjustPool(ctx context.Context, actor Actor, id uint, payload dto.ContractAdjustHoursRequest) (dto.ContractResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContractResponse{}, err
	}
	if payload.RemainingHours < 0 {
		return dto.ContractResponse{}, ErrInvalidHours
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContractResponse{}, ErrContractNotFound
		}
		return dto.ContractResponse{}, err
	}

	oldHours := contract.RemainingHours
	contract.RemainingHours = payload.RemainingHours
	if err := s.contracts.Update(ctx, &contract); err != nil {
		return dto.ContractResponse{}, err
	}

	contractRef := contract.ID
	if err := s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.AuditAdjustPool,
		EntityType: "contract_session",
		EntityID:   &contractRef,
		Metadata: map[string]interface{}{
			"old_remaining_hours": oldHours,
			"new_remaining_hours": payload.RemainingHours,
			"reason":              payload.Reason,
		},
	}); err != nil {
		return dto.ContractResponse{}, err
	}

	return dto.NewContractResponse(contract, s.now().UTC()), nil
}

func contractCode() string {
	return "CT-" + strings.ToUpper(uuid.NewString()[:8])
}
