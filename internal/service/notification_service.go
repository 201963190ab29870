package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/timeutil"
)

// NotificationFanout is the write side consumed by other services when a
// domain event occurs. Rows are created synchronously, in the request that
// triggered them.
type NotificationFanout interface {
	NotifyTeacherPending(ctx context.Context, teacherName string) error
	NotifyContractCreated(ctx context.Context, teacherUserID uint, contract models.ContractSession) error
	NotifyContractExpiring(ctx context.Context, contract models.ContractSession) error
	NotifyHomeworkAssigned(ctx context.Context, parentUserID uint, title string) error
	NotifyGradeRecorded(ctx context.Context, parentUserID uint, subject string) error
}

// NotificationService merges persisted rows with derived entries computed
// from current contract/attendance state at read time.
type NotificationService interface {
	NotificationFanout
	List(ctx context.Context, userID uint, role string, unreadOnly bool) ([]dto.NotificationView, error)
	MarkRead(ctx context.Context, userID uint, wireID int64) (dto.MarkReadResult, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
	contracts     repository.ContractRepository
	attendance    repository.AttendanceRepository
	groups        repository.GroupRepository
	users         repository.UserRepository
	expiryWindow  time.Duration
	persistedCap  int
	derivedLimit  int
	location      *time.Location
	logger        zerolog.Logger
	now           func() time.Time
}

// NewNotificationService builds the notification service. persistedCap and
// derivedLimit bound the merged list (most-recent persisted rows plus top
// derived rows); loc is the application timezone used for "today" boundaries.
func NewNotificationService(
	notifications repository.NotificationRepository,
	contracts repository.ContractRepository,
	attendance repository.AttendanceRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	expiryAlertDays, persistedCap, derivedLimit int,
	loc *time.Location,
	logger zerolog.Logger,
) NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &notificationService{
		notifications: notifications,
		contracts:     contracts,
		attendance:    attendance,
		groups:        groups,
		users:         users,
		expiryWindow:  time.Duration(expiryAlertDays) * 24 * time.Hour,
		persistedCap:  persistedCap,
		derivedLimit:  derivedLimit,
		location:      loc,
		logger:        logger.With().Str("component", "notification_service").Logger(),
		now:           time.Now,
	}
}

func (s *notificationService) List(ctx context.Context, userID uint, role string, unreadOnly bool) ([]dto.NotificationView, error) {
	persisted, err := s.notifications.ListByUser(ctx, userID, unreadOnly, s.persistedCap)
	if err != nil {
		return nil, err
	}

	views := make([]dto.NotificationView, 0, len(persisted))
	for _, row := range persisted {
		views = append(views, dto.NewPersistedNotificationView(row))
	}

	derived, err := s.deriveForRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	views = append(views, derived...)

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	return views, nil
}

// deriveForRole synthesizes the virtual notifications for the caller's role.
// Derived entries are recomputed on every call and never stored; their wire
// IDs are negative so mark-as-read can no-op on them.
func (s *notificationService) deriveForRole(ctx context.Context, userID uint, role string) ([]dto.NotificationView, error) {
	now := s.now().UTC()

	switch role {
	case models.RoleAdmin:
		expiring, err := s.contracts.ListExpiringBetween(ctx, now, now.Add(s.expiryWindow))
		if err != nil {
			return nil, err
		}
		if len(expiring) > s.derivedLimit {
			expiring = expiring[:s.derivedLimit]
		}

		views := make([]dto.NotificationView, 0, len(expiring))
		for _, contract := range expiring {
			views = append(views, dto.NotificationView{
				ID:        -int64(contract.ID),
				Kind:      dto.NotificationDerived,
				Key:       fmt.Sprintf("contract-expiring:%d", contract.ID),
				Type:      models.NotificationContractExpiring,
				Message:   fmt.Sprintf("Contract %s ends on %s", contract.Code, contract.SubscriptionPeriodEnd.Format("2006-01-02")),
				CreatedAt: now,
			})
		}
		return views, nil

	case models.RoleTeacher:
		profile, err := s.users.GetTeacherByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}

		dayStart, dayEnd := timeutil.DayBounds(now, s.location)
		logs, err := s.attendance.ListForTeacherBetween(ctx, profile.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		sessions, err := s.groups.ListSessionsForTeacherBetween(ctx, profile.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		total := len(logs) + len(sessions)
		if total == 0 {
			return nil, nil
		}
		return []dto.NotificationView{{
			ID:        -1,
			Kind:      dto.NotificationDerived,
			Key:       "sessions-today",
			Type:      "session_reminder",
			Message:   fmt.Sprintf("You have %d session(s) today", total),
			CreatedAt: now,
		}}, nil

	default:
		return nil, nil
	}
}

// MarkRead pattern-matches on the notification kind: derived entries (wire
// IDs below zero) always report success without touching storage.
func (s *notificationService) MarkRead(ctx context.Context, userID uint, wireID int64) (dto.MarkReadResult, error) {
	if wireID < 0 {
		return dto.MarkReadResult{
			ID:      wireID,
			Kind:    dto.NotificationDerived,
			Read:    true,
			Message: "derived notifications are not stored",
		}, nil
	}

	notification, err := s.notifications.MarkRead(ctx, uint(wireID), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarkReadResult{}, ErrNotificationNotFound
		}
		return dto.MarkReadResult{}, err
	}

	return dto.MarkReadResult{
		ID:      int64(notification.ID),
		Kind:    dto.NotificationPersisted,
		Read:    notification.Read,
		Message: "notification marked as read",
	}, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *notificationService) NotifyTeacherPending(ctx context.Context, teacherName string) error {
	return s.fanoutToAdmins(ctx, models.NotificationTeacherPending,
		fmt.Sprintf("Teacher %s is awaiting approval", teacherName))
}

func (s *notificationService) NotifyContractCreated(ctx context.Context, teacherUserID uint, contract models.ContractSession) error {
	return s.notifications.Create(ctx, &models.Notification{
		UserID:  teacherUserID,
		Type:    models.NotificationContractCreated,
		Message: fmt.Sprintf("New contract %s has been assigned to you", contract.Code),
	})
}

func (s *notificationService) NotifyContractExpiring(ctx context.Context, contract models.ContractSession) error {
	return s.fanoutToAdmins(ctx, models.NotificationContractExpiring,
		fmt.Sprintf("Contract %s ends within the alert window", contract.Code))
}

func (s *notificationService) NotifyHomeworkAssigned(ctx context.Context, parentUserID uint, title string) error {
	return s.notifications.Create(ctx, &models.Notification{
		UserID:  parentUserID,
		Type:    models.NotificationHomeworkAssigned,
		Message: fmt.Sprintf("New homework assigned: %s", title),
	})
}

func (s *notificationService) NotifyGradeRecorded(ctx context.Context, parentUserID uint, subject string) error {
	return s.notifications.Create(ctx, &models.Notification{
		UserID:  parentUserID,
		Type:    models.NotificationGradeRecorded,
		Message: fmt.Sprintf("A new grade was recorded in %s", subject),
	})
}

func (s *notificationService) fanoutToAdmins(ctx context.Context, notificationType, message string) error {
	adminIDs, err := s.users.ListIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}

	rows := make([]models.Notification, 0, len(adminIDs))
	for _, id := range adminIDs {
		rows = append(rows, models.Notification{UserID: id, Type: notificationType, Message: message})
	}
	return s.notifications.CreateBatch(ctx, rows)
}
