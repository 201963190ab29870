package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/observability"
	"github.com/edulane/edulane-api/internal/repository"
)

// AttendanceService enforces the check-in/check-out lifecycle and the
// hour-accounting side effect. The slot state machine per contract is:
// no open log (available) -> in_progress (check-in) -> completed (check-out).
type AttendanceService interface {
	CheckIn(ctx context.Context, teacherUserID, contractID uint) (dto.CheckInResponse, error)
	CheckOut(ctx context.Context, teacherUserID, logID uint, lessonNotes string) (dto.CheckOutResponse, error)
	MarkSessionStatus(ctx context.Context, teacherUserID, logID uint, status string) (dto.AttendanceLogResponse, error)
	CheckInGroup(ctx context.Context, teacherUserID, groupClassID uint) (dto.CheckInResponse, error)
	CheckOutGroup(ctx context.Context, teacherUserID, groupSessionID uint, lessonNotes string) (dto.GroupCheckOutResponse, error)
	AdjustHours(ctx context.Context, actor Actor, logID uint, hours float64, reason string) (dto.AttendanceLogResponse, error)
	OverrideTimes(ctx context.Context, actor Actor, logID uint, checkIn, checkOut *time.Time, reason string) (dto.AttendanceLogResponse, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	contracts  repository.ContractRepository
	groups     repository.GroupRepository
	users      repository.UserRepository
	audit      AuditRecorder
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAttendanceService builds the attendance engine.
func NewAttendanceService(
	attendance repository.AttendanceRepository,
	contracts repository.ContractRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	audit AuditRecorder,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		contracts:  contracts,
		groups:     groups,
		users:      users,
		audit:      audit,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
		now:        time.Now,
	}
}

func (s *attendanceService) teacherProfile(ctx context.Context, teacherUserID uint) (models.TeacherProfile, error) {
	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TeacherProfile{}, ErrTeacherNotFound
		}
		return models.TeacherProfile{}, err
	}
	return profile, nil
}

func (s *attendanceService) CheckIn(ctx context.Context, teacherUserID, contractID uint) (dto.CheckInResponse, error) {
	profile, err := s.teacherProfile(ctx, teacherUserID)
	if err != nil {
		return dto.CheckInResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckInResponse{}, ErrContractNotFound
		}
		return dto.CheckInResponse{}, err
	}

	// A contract owned by another teacher is invisible to the caller.
	if contract.TeacherProfileID != profile.ID {
		return dto.CheckInResponse{}, ErrContractNotFound
	}

	if contract.Status != models.ContractStatusActive {
		return dto.CheckInResponse{}, ErrContractInactive
	}

	if contract.BillingType == models.BillingHourly && contract.RemainingHours <= 0 {
		return dto.CheckInResponse{}, ErrNoRemainingHours
	}

	if _, open, err := s.attendance.FindOpenByContract(ctx, contract.ID); err != nil {
		return dto.CheckInResponse{}, err
	} else if open {
		return dto.CheckInResponse{}, ErrSessionInProgress
	}

	log := models.AttendanceLog{
		ContractSessionID: contract.ID,
		CheckInTime:       s.now().UTC(),
		Status:            models.AttendanceInProgress,
	}

	if err := s.attendance.Create(ctx, &log); err != nil {
		return dto.CheckInResponse{}, err
	}

	// The display code embeds the identity value, so it can only be written
	// once the row exists.
	log.SessionCode = fmt.Sprintf("SES-%06d", log.ID)
	if err := s.attendance.Update(ctx, &log); err != nil {
		return dto.CheckInResponse{}, err
	}

	observability.CheckIns().WithLabelValues("one_to_one").Inc()
	s.logger.Info().
		Uint("contract_id", contract.ID).
		Uint("attendance_log_id", log.ID).
		Msg("session checked in")

	return dto.CheckInResponse{
		SessionID:   log.ID,
		SessionCode: log.SessionCode,
		Message:     "session started",
	}, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, teacherUserID, logID uint, lessonNotes string) (dto.CheckOutResponse, error) {
	// Notes are checked before any state lookup, regardless of other state.
	if strings.TrimSpace(lessonNotes) == "" {
		return dto.CheckOutResponse{}, ErrNotesRequired
	}

	profile, err := s.teacherProfile(ctx, teacherUserID)
	if err != nil {
		return dto.CheckOutResponse{}, err
	}

	log, err := s.attendance.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckOutResponse{}, ErrAttendanceNotFound
		}
		return dto.CheckOutResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, log.ContractSessionID)
	if err != nil {
		return dto.CheckOutResponse{}, err
	}

	if contract.TeacherProfileID != profile.ID {
		return dto.CheckOutResponse{}, ErrAttendanceNotFound
	}

	if !log.Open() {
		return dto.CheckOutResponse{}, ErrAlreadyCheckedOut
	}

	checkOut := s.now().UTC()
	hoursUsed := checkOut.Sub(log.CheckInTime).Hours()

	log.CheckOutTime = &checkOut
	log.HoursUsed = hoursUsed
	log.LessonNotes = lessonNotes
	log.Status = models.AttendanceCompleted

	if err := s.attendance.Update(ctx, &log); err != nil {
		return dto.CheckOutResponse{}, err
	}

	// Partial hours consume a full unit from the legacy pool; the pool is not
	// authoritative under monthly billing but is maintained regardless.
	deducted := deductHours(&contract, int(math.Ceil(hoursUsed)))
	if err := s.contracts.Update(ctx, &contract); err != nil {
		return dto.CheckOutResponse{}, err
	}

	observability.CheckOuts().WithLabelValues("one_to_one").Inc()
	observability.HoursDeducted().Add(float64(deducted))
	s.logger.Info().
		Uint("attendance_log_id", log.ID).
		Float64("hours_used", hoursUsed).
		Int("remaining_hours", contract.RemainingHours).
		Msg("session checked out")

	return dto.CheckOutResponse{
		Success:        true,
		HoursUsed:      hoursUsed,
		RemainingHours: contract.RemainingHours,
		Message:        "session completed",
	}, nil
}

func (s *attendanceService) MarkSessionStatus(ctx context.Context, teacherUserID, logID uint, status string) (dto.AttendanceLogResponse, error) {
	if status != models.AttendanceCancelled && status != models.AttendanceNoShow {
		return dto.AttendanceLogResponse{}, ErrInvalidStatus
	}

	profile, err := s.teacherProfile(ctx, teacherUserID)
	if err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	log, err := s.attendance.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceLogResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceLogResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, log.ContractSessionID)
	if err != nil {
		return dto.AttendanceLogResponse{}, err
	}
	if contract.TeacherProfileID != profile.ID {
		return dto.AttendanceLogResponse{}, ErrAttendanceNotFound
	}

	if !log.Open() {
		return dto.AttendanceLogResponse{}, ErrAlreadyCheckedOut
	}

	// Cancelled and no-show sessions close without consuming hours.
	closedAt := s.now().UTC()
	log.CheckOutTime = &closedAt
	log.HoursUsed = 0
	log.Status = status

	if err := s.attendance.Update(ctx, &log); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	s.logger.Info().Uint("attendance_log_id", log.ID).Str("status", status).Msg("session closed without hours")
	return dto.NewAttendanceLogResponse(log), nil
}

func (s *attendanceService) CheckInGroup(ctx context.Context, teacherUserID, groupClassID uint) (dto.CheckInResponse, error) {
	profile, err := s.teacherProfile(ctx, teacherUserID)
	if err != nil {
		return dto.CheckInResponse{}, err
	}

	class, err := s.groups.GetClassByID(ctx, groupClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckInResponse{}, ErrGroupClassNotFound
		}
		return dto.CheckInResponse{}, err
	}
	if class.TeacherProfileID != profile.ID {
		return dto.CheckInResponse{}, ErrGroupClassNotFound
	}

	if _, open, err := s.groups.FindOpenSessionByClass(ctx, class.ID); err != nil {
		return dto.CheckInResponse{}, err
	} else if open {
		return dto.CheckInResponse{}, ErrSessionInProgress
	}

	contracts, err := s.groups.ListEnrolledContracts(ctx, class.ID)
	if err != nil {
		return dto.CheckInResponse{}, err
	}
	if countActive(contracts) == 0 {
		return dto.CheckInResponse{}, ErrNoActiveStudents
	}

	session := models.GroupSession{
		GroupClassID: class.ID,
		CheckInTime:  s.now().UTC(),
		Status:       models.AttendanceInProgress,
	}
	if err := s.groups.CreateSession(ctx, &session); err != nil {
		return dto.CheckInResponse{}, err
	}

	observability.CheckIns().WithLabelValues("group").Inc()
	s.logger.Info().
		Uint("group_class_id", class.ID).
		Uint("group_session_id", session.ID).
		Msg("group session checked in")

	return dto.CheckInResponse{
		SessionID: session.ID,
		Message:   "group session started",
	}, nil
}

func (s *attendanceService) CheckOutGroup(ctx context.Context, teacherUserID, groupSessionID uint, lessonNotes string) (dto.GroupCheckOutResponse, error) {
	if strings.TrimSpace(lessonNotes) == "" {
		return dto.GroupCheckOutResponse{}, ErrNotesRequired
	}

	profile, err := s.teacherProfile(ctx, teacherUserID)
	if err != nil {
		return dto.GroupCheckOutResponse{}, err
	}

	session, err := s.groups.GetSessionByID(ctx, groupSessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupCheckOutResponse{}, ErrGroupSessionNotFound
		}
		return dto.GroupCheckOutResponse{}, err
	}

	class, err := s.groups.GetClassByID(ctx, session.GroupClassID)
	if err != nil {
		return dto.GroupCheckOutResponse{}, err
	}
	if class.TeacherProfileID != profile.ID {
		return dto.GroupCheckOutResponse{}, ErrGroupSessionNotFound
	}

	if !session.Open() {
		return dto.GroupCheckOutResponse{}, ErrAlreadyCheckedOut
	}

	checkOut := s.now().UTC()
	hoursUsed := checkOut.Sub(session.CheckInTime).Hours()
	wholeHours := int(math.Ceil(hoursUsed))

	session.CheckOutTime = &checkOut
	session.LessonNotes = lessonNotes
	session.Status = models.AttendanceCompleted
	if err := s.groups.UpdateSession(ctx, &session); err != nil {
		return dto.GroupCheckOutResponse{}, err
	}

	// Fan out: one attendance row per enrolled active contract, each
	// deducting from its own student's pool independently.
	contracts, err := s.groups.ListEnrolledContracts(ctx, class.ID)
	if err != nil {
		return dto.GroupCheckOutResponse{}, err
	}

	rows := make([]models.GroupSessionAttendance, 0, len(contracts))
	for i := range contracts {
		contract := contracts[i]
		if contract.Status != models.ContractStatusActive {
			continue
		}

		deducted := deductHours(&contract, wholeHours)
		if err := s.contracts.Update(ctx, &contract); err != nil {
			return dto.GroupCheckOutResponse{}, err
		}
		observability.HoursDeducted().Add(float64(deducted))

		rows = append(rows, models.GroupSessionAttendance{
			GroupSessionID:    session.ID,
			StudentID:         contract.StudentID,
			ContractSessionID: contract.ID,
			HoursDeducted:     deducted,
			Present:           true,
		})
	}

	if err := s.groups.CreateAttendance(ctx, rows); err != nil {
		return dto.GroupCheckOutResponse{}, err
	}

	observability.CheckOuts().WithLabelValues("group").Inc()
	s.logger.Info().
		Uint("group_session_id", session.ID).
		Int("students", len(rows)).
		Float64("hours_used", hoursUsed).
		Msg("group session checked out")

	return dto.GroupCheckOutResponse{
		Success:       true,
		HoursUsed:     hoursUsed,
		StudentsCount: len(rows),
		Message:       "group session completed",
	}, nil
}

// AdjustHours force-sets the recorded hours on a log, reversing the old
// ceiling-rounded deduction and applying the new one. Only existence is
// checked; the call is always audited.
func (s *attendanceService) AdjustHours(ctx context.Context, actor Actor, logID uint, hours float64, reason string) (dto.AttendanceLogResponse, error) {
	if hours < 0 {
		return dto.AttendanceLogResponse{}, ErrInvalidHours
	}

	log, err := s.attendance.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceLogResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceLogResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, log.ContractSessionID)
	if err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	oldHours := log.HoursUsed
	oldCeil := int(math.Ceil(oldHours))
	newCeil := int(math.Ceil(hours))

	log.HoursUsed = hours
	if err := s.attendance.Update(ctx, &log); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	contract.RemainingHours += oldCeil - newCeil
	if contract.RemainingHours < 0 {
		contract.RemainingHours = 0
	}
	if err := s.contracts.Update(ctx, &contract); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	logRef := log.ID
	if err := s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.AuditAdjustHours,
		EntityType: "attendance_log",
		EntityID:   &logRef,
		Metadata: map[string]interface{}{
			"old_hours":       oldHours,
			"new_hours":       hours,
			"reason":          reason,
			"remaining_hours": contract.RemainingHours,
		},
	}); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	return dto.NewAttendanceLogResponse(log), nil
}

// OverrideTimes force-sets check-in/check-out timestamps, bypassing the
// normal precondition checks except existence. Audited on every call.
func (s *attendanceService) OverrideTimes(ctx context.Context, actor Actor, logID uint, checkIn, checkOut *time.Time, reason string) (dto.AttendanceLogResponse, error) {
	log, err := s.attendance.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceLogResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceLogResponse{}, err
	}

	contract, err := s.contracts.GetByID(ctx, log.ContractSessionID)
	if err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	metadata := map[string]interface{}{
		"reason":       reason,
		"old_check_in": log.CheckInTime,
	}
	if log.CheckOutTime != nil {
		metadata["old_check_out"] = *log.CheckOutTime
	}

	if checkIn != nil {
		log.CheckInTime = checkIn.UTC()
		metadata["new_check_in"] = log.CheckInTime
	}
	if checkOut != nil {
		utc := checkOut.UTC()
		log.CheckOutTime = &utc
		metadata["new_check_out"] = utc
	}

	// When both endpoints are known the recorded hours and the pool
	// deduction are rebalanced from the overridden wall-clock span.
	if log.CheckOutTime != nil {
		oldCeil := int(math.Ceil(log.HoursUsed))
		log.HoursUsed = log.CheckOutTime.Sub(log.CheckInTime).Hours()
		log.Status = models.AttendanceCompleted
		newCeil := int(math.Ceil(log.HoursUsed))

		contract.RemainingHours += oldCeil - newCeil
		if contract.RemainingHours < 0 {
			contract.RemainingHours = 0
		}
		if err := s.contracts.Update(ctx, &contract); err != nil {
			return dto.AttendanceLogResponse{}, err
		}
	}

	if err := s.attendance.Update(ctx, &log); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	logRef := log.ID
	if err := s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.AuditOverrideTimes,
		EntityType: "attendance_log",
		EntityID:   &logRef,
		Metadata:   metadata,
	}); err != nil {
		return dto.AttendanceLogResponse{}, err
	}

	return dto.NewAttendanceLogResponse(log), nil
}

// deductHours removes whole hours from the legacy pool, floored at zero, and
// returns the amount actually requested for deduction.
func deductHours(contract *models.ContractSession, wholeHours int) int {
	contract.RemainingHours -= wholeHours
	if contract.RemainingHours < 0 {
		contract.RemainingHours = 0
	}
	return wholeHours
}

func countActive(contracts []models.ContractSession) int {
	active := 0
	for _, contract := range contracts {
		if contract.Status == models.ContractStatusActive {
			active++
		}
	}
	return active
}
