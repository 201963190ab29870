package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

// RevenueRow pairs delivered hours with the owning teacher's rate for the
// revenue approximation. It is not a ledger.
type RevenueRow struct {
	HoursUsed  float64
	HourlyRate float64
}

// AttendanceRepository handles persistence for 1:1 attendance logs.
type AttendanceRepository interface {
	Create(ctx context.Context, log *models.AttendanceLog) error
	Update(ctx context.Context, log *models.AttendanceLog) error
	GetByID(ctx context.Context, id uint) (models.AttendanceLog, error)
	FindOpenByContract(ctx context.Context, contractID uint) (models.AttendanceLog, bool, error)
	ListForTeacherBetween(ctx context.Context, teacherProfileID uint, from, to time.Time) ([]models.AttendanceLog, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
	RevenueRows(ctx context.Context, from, to time.Time) ([]RevenueRow, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs a repository backed by GORM.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, log *models.AttendanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *attendanceRepository) Update(ctx context.Context, log *models.AttendanceLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (models.AttendanceLog, error) {
	var log models.AttendanceLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return models.AttendanceLog{}, err
	}
	return log, nil
}

// FindOpenByContract returns the single open log for a contract, if any.
// There is no unique constraint backing this existence check, so two
// near-simultaneous check-ins can slip through the window between check and
// insert.
// TODO: add a partial unique index on attendance_logs(contract_session_id)
// WHERE check_out_time IS NULL to close the race.
func (r *attendanceRepository) FindOpenByContract(ctx context.Context, contractID uint) (models.AttendanceLog, bool, error) {
	var log models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("contract_session_id = ? AND check_out_time IS NULL", contractID).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AttendanceLog{}, false, nil
	}
	if err != nil {
		return models.AttendanceLog{}, false, err
	}
	return log, true, nil
}

func (r *attendanceRepository) ListForTeacherBetween(ctx context.Context, teacherProfileID uint, from, to time.Time) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	if err := r.db.WithContext(ctx).
		Joins("JOIN contract_sessions ON contract_sessions.id = attendance_logs.contract_session_id").
		Where("contract_sessions.teacher_profile_id = ?", teacherProfileID).
		Where("attendance_logs.check_in_time >= ? AND attendance_logs.check_in_time < ?", from, to).
		Order("attendance_logs.check_in_time ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *attendanceRepository) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AttendanceLog{}).
		Where("status = ?", models.AttendanceCompleted).
		Where("check_out_time >= ? AND check_out_time < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepository) RevenueRows(ctx context.Context, from, to time.Time) ([]RevenueRow, error) {
	var rows []RevenueRow
	if err := r.db.WithContext(ctx).Model(&models.AttendanceLog{}).
		Select("attendance_logs.hours_used AS hours_used, teacher_profiles.hourly_rate AS hourly_rate").
		Joins("JOIN contract_sessions ON contract_sessions.id = attendance_logs.contract_session_id").
		Joins("JOIN teacher_profiles ON teacher_profiles.id = contract_sessions.teacher_profile_id").
		Where("attendance_logs.status = ?", models.AttendanceCompleted).
		Where("attendance_logs.check_out_time >= ? AND attendance_logs.check_out_time < ?", from, to).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
