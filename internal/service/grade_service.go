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

// GradeService records and lists student grades.
type GradeService interface {
	Record(ctx context.Context, teacherUserID uint, payload dto.GradeCreateRequest) (dto.GradeResponse, error)
	ListForTeacher(ctx context.Context, teacherUserID uint, studentID *uint) ([]dto.GradeResponse, error)
	ListForParent(ctx context.Context, parentUserID uint) ([]dto.GradeResponse, error)
}

type gradeService struct {
	grades    repository.GradeRepository
	students  repository.StudentRepository
	users     repository.UserRepository
	notifier  NotificationFanout
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewGradeService builds the grade service.
func NewGradeService(
	grades repository.GradeRepository,
	students repository.StudentRepository,
	users repository.UserRepository,
	notifier NotificationFanout,
	validate *validator.Validate,
	logger zerolog.Logger,
) GradeService {
	return &gradeService{
		grades:    grades,
		students:  students,
		users:     users,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "grade_service").Logger(),
		now:       time.Now,
	}
}

func (s *gradeService) Record(ctx context.Context, teacherUserID uint, payload dto.GradeCreateRequest) (dto.GradeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GradeResponse{}, err
	}

	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradeResponse{}, ErrTeacherNotFound
		}
		return dto.GradeResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradeResponse{}, ErrStudentNotFound
		}
		return dto.GradeResponse{}, err
	}

	grade := models.StudentGrade{
		TeacherProfileID:  profile.ID,
		StudentID:         student.ID,
		ContractSessionID: payload.ContractSessionID,
		Subject:           payload.Subject,
		Score:             payload.Score,
		MaxScore:          payload.MaxScore,
		Comment:           payload.Comment,
	}

	if err := s.grades.Create(ctx, &grade); err != nil {
		return dto.GradeResponse{}, err
	}

	if err := s.notifier.NotifyGradeRecorded(ctx, student.ParentUserID, grade.Subject); err != nil {
		s.logger.Warn().Err(err).Uint("grade_id", grade.ID).Msg("failed to notify parent about grade")
	}

	s.logger.Info().Uint("grade_id", grade.ID).Uint("student_id", student.ID).Msg("grade recorded")
	return dto.NewGradeResponse(grade), nil
}

func (s *gradeService) ListForTeacher(ctx context.Context, teacherUserID uint, studentID *uint) ([]dto.GradeResponse, error) {
	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	filter := repository.GradeFilter{TeacherProfileID: &profile.ID}
	if studentID != nil {
		filter.StudentIDs = []uint{*studentID}
	}

	grades, err := s.grades.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewGradeResponseSlice(grades), nil
}

func (s *gradeService) ListForParent(ctx context.Context, parentUserID uint) ([]dto.GradeResponse, error) {
	students, err := s.students.ListByParent(ctx, parentUserID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []dto.GradeResponse{}, nil
	}

	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}

	grades, err := s.grades.List(ctx, repository.GradeFilter{StudentIDs: ids})
	if err != nil {
		return nil, err
	}
	return dto.NewGradeResponseSlice(grades), nil
}
