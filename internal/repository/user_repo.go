package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// UserRepository handles persistence for application users and teacher profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.ApplicationUser, error)
	ListIDsByRole(ctx context.Context, role string) ([]uint, error)
	GetTeacherByID(ctx context.Context, id uint) (models.TeacherProfile, error)
	GetTeacherByUserID(ctx context.Context, userID uint) (models.TeacherProfile, error)
	CreateTeacher(ctx context.Context, profile *models.TeacherProfile) error
	UpdateTeacher(ctx context.Context, profile *models.TeacherProfile) error
	ListTeachers(ctx context.Context) ([]models.TeacherProfile, error)
	CountTeachers(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.ApplicationUser, error) {
	var user models.ApplicationUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.ApplicationUser{}, err
	}
	return user, nil
}

func (r *userRepository) ListIDsByRole(ctx context.Context, role string) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.ApplicationUser{}).
		Where("role = ? AND active = ?", role, true).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) GetTeacherByID(ctx context.Context, id uint) (models.TeacherProfile, error) {
	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return models.TeacherProfile{}, err
	}
	return profile, nil
}

func (r *userRepository) GetTeacherByUserID(ctx context.Context, userID uint) (models.TeacherProfile, error) {
	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.TeacherProfile{}, err
	}
	return profile, nil
}

func (r *userRepository) CreateTeacher(ctx context.Context, profile *models.TeacherProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *userRepository) UpdateTeacher(ctx context.Context, profile *models.TeacherProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *userRepository) ListTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	var profiles []models.TeacherProfile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) CountTeachers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeacherProfile{}).Count(&count).Error
	return count, err
}
