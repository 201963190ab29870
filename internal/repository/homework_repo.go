package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// HomeworkFilter narrows homework list queries.
type HomeworkFilter struct {
	TeacherProfileID  *uint
	StudentIDs        []uint
	ContractSessionID *uint
	Status            string
}

// HomeworkRepository handles persistence for homework records.
type HomeworkRepository interface {
	Create(ctx context.Context, homework *models.Homework) error
	Update(ctx context.Context, homework *models.Homework) error
	GetByID(ctx context.Context, id uint) (models.Homework, error)
	List(ctx context.Context, filter HomeworkFilter) ([]models.Homework, error)
	CountPendingByTeacher(ctx context.Context, teacherProfileID uint) (int64, error)
}

type homeworkRepository struct {
	db *gorm.DB
}

// NewHomeworkRepository constructs a repository backed by GORM.
func NewHomeworkRepository(db *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

func (r *homeworkRepository) Create(ctx context.Context, homework *models.Homework) error {
	return r.db.WithContext(ctx).Create(homework).Error
}

func (r *homeworkRepository) Update(ctx context.Context, homework *models.Homework) error {
	return r.db.WithContext(ctx).Save(homework).Error
}

func (r *homeworkRepository) GetByID(ctx context.Context, id uint) (models.Homework, error) {
	var homework models.Homework
	if err := r.db.WithContext(ctx).First(&homework, id).Error; err != nil {
		return models.Homework{}, err
	}
	return homework, nil
}

func (r *homeworkRepository) List(ctx context.Context, filter HomeworkFilter) ([]models.Homework, error) {
	query := r.db.WithContext(ctx).Model(&models.Homework{})

	if filter.TeacherProfileID != nil {
		query = query.Where("teacher_profile_id = ?", *filter.TeacherProfileID)
	}

	if len(filter.StudentIDs) > 0 {
		query = query.Where("student_id IN ?", filter.StudentIDs)
	}

	if filter.ContractSessionID != nil {
		query = query.Where("contract_session_id = ?", *filter.ContractSessionID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []models.Homework
	if err := query.Order("due_date ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *homeworkRepository) CountPendingByTeacher(ctx context.Context, teacherProfileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Homework{}).
		Where("teacher_profile_id = ?", teacherProfileID).
		Where("status = ?", models.HomeworkSubmitted).
		Count(&count).Error
	return count, err
}
