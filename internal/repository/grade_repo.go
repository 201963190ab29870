package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// GradeFilter narrows grade list queries.
type GradeFilter struct {
	TeacherProfileID *uint
	StudentIDs       []uint
	Subject          string
}

// GradeRepository handles persistence for student grades.
type GradeRepository interface {
	Create(ctx context.Context, grade *models.StudentGrade) error
	List(ctx context.Context, filter GradeFilter) ([]models.StudentGrade, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs a repository backed by GORM.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.StudentGrade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) List(ctx context.Context, filter GradeFilter) ([]models.StudentGrade, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentGrade{})

	if filter.TeacherProfileID != nil {
		query = query.Where("teacher_profile_id = ?", *filter.TeacherProfileID)
	}

	if len(filter.StudentIDs) > 0 {
		query = query.Where("student_id IN ?", filter.StudentIDs)
	}

	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}

	var grades []models.StudentGrade
	if err := query.Order("created_at DESC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}
