package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// GroupRepository handles persistence for group classes, their delivered
// sessions, and per-student attendance rows.
type GroupRepository interface {
	GetClassByID(ctx context.Context, id uint) (models.GroupClass, error)
	ListClassesByTeacher(ctx context.Context, teacherProfileID uint) ([]models.GroupClass, error)
	CreateSession(ctx context.Context, session *models.GroupSession) error
	UpdateSession(ctx context.Context, session *models.GroupSession) error
	GetSessionByID(ctx context.Context, id uint) (models.GroupSession, error)
	FindOpenSessionByClass(ctx context.Context, groupClassID uint) (models.GroupSession, bool, error)
	ListSessionsForTeacherBetween(ctx context.Context, teacherProfileID uint, from, to time.Time) ([]models.GroupSession, error)
	CreateAttendance(ctx context.Context, rows []models.GroupSessionAttendance) error
	ListEnrolledContracts(ctx context.Context, groupClassID uint) ([]models.ContractSession, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository constructs a repository backed by GORM.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetClassByID(ctx context.Context, id uint) (models.GroupClass, error) {
	var class models.GroupClass
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.GroupClass{}, err
	}
	return class, nil
}

func (r *groupRepository) ListClassesByTeacher(ctx context.Context, teacherProfileID uint) ([]models.GroupClass, error) {
	var classes []models.GroupClass
	if err := r.db.WithContext(ctx).
		Where("teacher_profile_id = ?", teacherProfileID).
		Order("name ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *groupRepository) CreateSession(ctx context.Context, session *models.GroupSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *groupRepository) UpdateSession(ctx context.Context, session *models.GroupSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *groupRepository) GetSessionByID(ctx context.Context, id uint) (models.GroupSession, error) {
	var session models.GroupSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return models.GroupSession{}, err
	}
	return session, nil
}

func (r *groupRepository) FindOpenSessionByClass(ctx context.Context, groupClassID uint) (models.GroupSession, bool, error) {
	var session models.GroupSession
	err := r.db.WithContext(ctx).
		Where("group_class_id = ? AND check_out_time IS NULL", groupClassID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GroupSession{}, false, nil
	}
	if err != nil {
		return models.GroupSession{}, false, err
	}
	return session, true, nil
}

func (r *groupRepository) ListSessionsForTeacherBetween(ctx context.Context, teacherProfileID uint, from, to time.Time) ([]models.GroupSession, error) {
	var sessions []models.GroupSession
	if err := r.db.WithContext(ctx).
		Joins("JOIN group_classes ON group_classes.id = group_sessions.group_class_id").
		Where("group_classes.teacher_profile_id = ?", teacherProfileID).
		Where("group_sessions.check_in_time >= ? AND group_sessions.check_in_time < ?", from, to).
		Order("group_sessions.check_in_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *groupRepository) CreateAttendance(ctx context.Context, rows []models.GroupSessionAttendance) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListEnrolledContracts returns the active-or-not contracts of students
// enrolled in a group class. Enrollment is modelled as a contract whose
// student holds a group subscription tied to the class teacher.
func (r *groupRepository) ListEnrolledContracts(ctx context.Context, groupClassID uint) ([]models.ContractSession, error) {
	var contracts []models.ContractSession
	if err := r.db.WithContext(ctx).
		Joins("JOIN group_enrollments ON group_enrollments.contract_session_id = contract_sessions.id").
		Where("group_enrollments.group_class_id = ?", groupClassID).
		Order("contract_sessions.id ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}
