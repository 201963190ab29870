package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

// HomeworkService covers homework assignment and its lifecycle. Instructions
// arrive as rich text from the web client and are sanitized before storage.
type HomeworkService interface {
	Assign(ctx context.Context, teacherUserID uint, payload dto.HomeworkCreateRequest) (dto.HomeworkResponse, error)
	UpdateStatus(ctx context.Context, teacherUserID, homeworkID uint, payload dto.HomeworkStatusRequest) (dto.HomeworkResponse, error)
	ListForTeacher(ctx context.Context, teacherUserID uint, studentID, contractID *uint) ([]dto.HomeworkResponse, error)
	ListForParent(ctx context.Context, parentUserID uint) ([]dto.HomeworkResponse, error)
}

type homeworkService struct {
	homework  repository.HomeworkRepository
	students  repository.StudentRepository
	users     repository.UserRepository
	notifier  NotificationFanout
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewHomeworkService builds the homework service.
func NewHomeworkService(
	homework repository.HomeworkRepository,
	students repository.StudentRepository,
	users repository.UserRepository,
	notifier NotificationFanout,
	validate *validator.Validate,
	logger zerolog.Logger,
) HomeworkService {
	return &homeworkService{
		homework:  homework,
		students:  students,
		users:     users,
		notifier:  notifier,
		validator: validate,
		policy:    bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "homework_service").Logger(),
		now:       time.Now,
	}
}

func (s *homeworkService) Assign(ctx context.Context, teacherUserID uint, payload dto.HomeworkCreateRequest) (dto.HomeworkResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HomeworkResponse{}, err
	}

	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkResponse{}, ErrTeacherNotFound
		}
		return dto.HomeworkResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkResponse{}, ErrStudentNotFound
		}
		return dto.HomeworkResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.HomeworkResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	homework := models.Homework{
		TeacherProfileID:  profile.ID,
		StudentID:         student.ID,
		ContractSessionID: payload.ContractSessionID,
		Title:             payload.Title,
		Instructions:      s.policy.Sanitize(payload.Instructions),
		DueDate:           dueDate.UTC(),
		Status:            models.HomeworkAssigned,
	}

	if err := s.homework.Create(ctx, &homework); err != nil {
		return dto.HomeworkResponse{}, err
	}

	if err := s.notifier.NotifyHomeworkAssigned(ctx, student.ParentUserID, homework.Title); err != nil {
		s.logger.Warn().Err(err).Uint("homework_id", homework.ID).Msg("failed to notify parent about homework")
	}

	s.logger.Info().Uint("homework_id", homework.ID).Uint("student_id", student.ID).Msg("homework assigned")
	return dto.NewHomeworkResponse(homework, s.now().UTC()), nil
}

func (s *homeworkService) UpdateStatus(ctx context.Context, teacherUserID, homeworkID uint, payload dto.HomeworkStatusRequest) (dto.HomeworkResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HomeworkResponse{}, err
	}

	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkResponse{}, ErrTeacherNotFound
		}
		return dto.HomeworkResponse{}, err
	}

	homework, err := s.homework.GetByID(ctx, homeworkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkResponse{}, ErrHomeworkNotFound
		}
		return dto.HomeworkResponse{}, err
	}
	if homework.TeacherProfileID != profile.ID {
		return dto.HomeworkResponse{}, ErrHomeworkNotFound
	}

	if !validHomeworkTransition(homework.Status, payload.Status) {
		return dto.HomeworkResponse{}, ErrInvalidStatus
	}

	homework.Status = payload.Status
	if payload.Status == models.HomeworkSubmitted {
		submittedAt := s.now().UTC()
		homework.SubmittedAt = &submittedAt
	}

	if err := s.homework.Update(ctx, &homework); err != nil {
		return dto.HomeworkResponse{}, err
	}

	return dto.NewHomeworkResponse(homework, s.now().UTC()), nil
}

func (s *homeworkService) ListForTeacher(ctx context.Context, teacherUserID uint, studentID, contractID *uint) ([]dto.HomeworkResponse, error) {
	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	filter := repository.HomeworkFilter{TeacherProfileID: &profile.ID, ContractSessionID: contractID}
	if studentID != nil {
		filter.StudentIDs = []uint{*studentID}
	}

	items, err := s.homework.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewHomeworkResponseSlice(items, s.now().UTC()), nil
}

func (s *homeworkService) ListForParent(ctx context.Context, parentUserID uint) ([]dto.HomeworkResponse, error) {
	students, err := s.students.ListByParent(ctx, parentUserID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []dto.HomeworkResponse{}, nil
	}

	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}

	items, err := s.homework.List(ctx, repository.HomeworkFilter{StudentIDs: ids})
	if err != nil {
		return nil, err
	}
	return dto.NewHomeworkResponseSlice(items, s.now().UTC()), nil
}

// validHomeworkTransition allows assigned -> submitted -> graded. Overdue is
// a read-time derivation, not a stored transition.
func validHomeworkTransition(from, to string) bool {
	switch to {
	case models.HomeworkSubmitted:
		return from == models.HomeworkAssigned
	case models.HomeworkGraded:
		return from == models.HomeworkSubmitted
	default:
		return false
	}
}
