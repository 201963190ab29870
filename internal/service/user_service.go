package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

// UserService covers teacher onboarding and directory reads. Teacher
// profiles start unapproved; an admin flips the flag.
type UserService interface {
	RegisterTeacher(ctx context.Context, payload dto.TeacherRegisterRequest) (dto.TeacherResponse, error)
	ApproveTeacher(ctx context.Context, actor Actor, teacherProfileID uint) (dto.TeacherResponse, error)
	ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error)
	ListChildren(ctx context.Context, parentUserID uint) ([]dto.StudentResponse, error)
}

type userService struct {
	users     repository.UserRepository
	students  repository.StudentRepository
	notifier  NotificationFanout
	audit     AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService builds the user directory service.
func NewUserService(
	users repository.UserRepository,
	students repository.StudentRepository,
	notifier NotificationFanout,
	audit AuditRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:     users,
		students:  students,
		notifier:  notifier,
		audit:     audit,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) RegisterTeacher(ctx context.Context, payload dto.TeacherRegisterRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}
	if user.Role != models.RoleTeacher {
		return dto.TeacherResponse{}, &BusinessError{
			Code:    "INVALID_STATUS",
			Message: "account is not a teacher account",
		}
	}

	if _, err := s.users.GetTeacherByUserID(ctx, payload.UserID); err == nil {
		return dto.TeacherResponse{}, &BusinessError{
			Code:    "INVALID_STATUS",
			Message: "teacher profile already exists for this account",
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TeacherResponse{}, err
	}

	profile := models.TeacherProfile{
		UserID:     payload.UserID,
		Subjects:   payload.Subjects,
		Bio:        payload.Bio,
		HourlyRate: payload.HourlyRate,
	}
	if err := s.users.CreateTeacher(ctx, &profile); err != nil {
		return dto.TeacherResponse{}, err
	}

	if err := s.notifier.NotifyTeacherPending(ctx, user.Name); err != nil {
		s.logger.Warn().Err(err).Uint("teacher_profile_id", profile.ID).Msg("failed to notify admins about pending teacher")
	}

	s.logger.Info().Uint("teacher_profile_id", profile.ID).Uint("user_id", user.ID).Msg("teacher profile registered")
	return dto.NewTeacherResponse(profile), nil
}

func (s *userService) ApproveTeacher(ctx context.Context, actor Actor, teacherProfileID uint) (dto.TeacherResponse, error) {
	profile, err := s.users.GetTeacherByID(ctx, teacherProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	if !profile.Approved {
		profile.Approved = true
		if err := s.users.UpdateTeacher(ctx, &profile); err != nil {
			return dto.TeacherResponse{}, err
		}

		profileRef := profile.ID
		if err := s.audit.Record(ctx, AuditEntry{
			Actor:      actor,
			Action:     models.AuditStatusChange,
			EntityType: "teacher_profile",
			EntityID:   &profileRef,
			Metadata:   map[string]interface{}{"approved": true},
		}); err != nil {
			return dto.TeacherResponse{}, err
		}
	}

	return dto.NewTeacherResponse(profile), nil
}

func (s *userService) ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	profiles, err := s.users.ListTeachers(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTeacherResponseSlice(profiles), nil
}

// ListChildren backs the parent portal's children view.
func (s *userService) ListChildren(ctx context.Context, parentUserID uint) ([]dto.StudentResponse, error) {
	students, err := s.students.ListByParent(ctx, parentUserID)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}
