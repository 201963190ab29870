package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

// Actor represents the authenticated user performing an audited action.
type Actor struct {
	ID   uint
	Role string
}

// AuditEntry captures the details required to persist one audit row.
type AuditEntry struct {
	Actor      Actor
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// AuditRecorder defines behaviour for writing audit rows. Services performing
// admin overrides depend on this rather than the full service.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditService records and queries the override audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, filter repository.AuditLogFilter) ([]dto.AuditLogResponse, int64, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("audit action is required")
	}
	if entry.Actor.ID == 0 {
		return fmt.Errorf("audit actor is required")
	}

	row := models.AuditLog{
		ActorID:    entry.Actor.ID,
		ActorRole:  entry.Actor.Role,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   datatypes.JSONMap(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &row); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	s.logger.Info().
		Uint("actor_id", entry.Actor.ID).
		Str("action", entry.Action).
		Str("entity_type", entry.EntityType).
		Msg("audit entry recorded")

	return nil
}

func (s *auditService) List(ctx context.Context, filter repository.AuditLogFilter) ([]dto.AuditLogResponse, int64, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.NewAuditLogResponseSlice(entries), total, nil
}
