package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/timeutil"
)

// TeacherDashboardService assembles the teacher's day and week views.
type TeacherDashboardService interface {
	Dashboard(ctx context.Context, teacherUserID uint) (dto.TeacherDashboardResponse, error)
	TodaySessions(ctx context.Context, teacherUserID uint) ([]dto.SessionSummary, error)
	WeekCalendar(ctx context.Context, teacherUserID uint, weekStart string) (dto.WeekCalendarResponse, error)
}

type teacherDashboardService struct {
	attendance repository.AttendanceRepository
	groups     repository.GroupRepository
	contracts  repository.ContractRepository
	homework   repository.HomeworkRepository
	holidays   repository.HolidayRepository
	users      repository.UserRepository
	location   *time.Location
	logger     zerolog.Logger
	now        func() time.Time
}

// NewTeacherDashboardService builds the teacher dashboard service.
func NewTeacherDashboardService(
	attendance repository.AttendanceRepository,
	groups repository.GroupRepository,
	contracts repository.ContractRepository,
	homework repository.HomeworkRepository,
	holidays repository.HolidayRepository,
	users repository.UserRepository,
	loc *time.Location,
	logger zerolog.Logger,
) TeacherDashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &teacherDashboardService{
		attendance: attendance,
		groups:     groups,
		contracts:  contracts,
		homework:   homework,
		holidays:   holidays,
		users:      users,
		location:   loc,
		logger:     logger.With().Str("component", "teacher_dashboard_service").Logger(),
		now:        time.Now,
	}
}

func (s *teacherDashboardService) profile(ctx context.Context, teacherUserID uint) (models.TeacherProfile, error) {
	profile, err := s.users.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TeacherProfile{}, ErrTeacherNotFound
		}
		return models.TeacherProfile{}, err
	}
	return profile, nil
}

func (s *teacherDashboardService) sessionsBetween(ctx context.Context, teacherProfileID uint, from, to time.Time) ([]dto.SessionSummary, error) {
	logs, err := s.attendance.ListForTeacherBetween(ctx, teacherProfileID, from, to)
	if err != nil {
		return nil, err
	}
	groupSessions, err := s.groups.ListSessionsForTeacherBetween(ctx, teacherProfileID, from, to)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummary, 0, len(logs)+len(groupSessions))
	for _, log := range logs {
		summaries = append(summaries, dto.SessionSummary{
			ID:           log.ID,
			Kind:         "one_to_one",
			ContractID:   log.ContractSessionID,
			CheckInTime:  log.CheckInTime,
			CheckOutTime: log.CheckOutTime,
			HoursUsed:    log.HoursUsed,
			Status:       log.Status,
		})
	}
	for _, session := range groupSessions {
		summaries = append(summaries, dto.SessionSummary{
			ID:           session.ID,
			Kind:         "group",
			GroupClassID: session.GroupClassID,
			CheckInTime:  session.CheckInTime,
			CheckOutTime: session.CheckOutTime,
			Status:       session.Status,
		})
	}
	return summaries, nil
}

func (s *teacherDashboardService) Dashboard(ctx context.Context, teacherUserID uint) (dto.TeacherDashboardResponse, error) {
	profile, err := s.profile(ctx, teacherUserID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	dayStart, dayEnd := timeutil.DayBounds(s.now(), s.location)
	sessions, err := s.sessionsBetween(ctx, profile.ID, dayStart, dayEnd)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	var openSession *dto.SessionSummary
	for i := range sessions {
		if sessions[i].CheckOutTime == nil {
			openSession = &sessions[i]
			break
		}
	}

	_, activeContracts, err := s.contracts.List(ctx, repository.ContractFilter{
		TeacherProfileID: &profile.ID,
		Status:           models.ContractStatusActive,
	})
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	pendingHomework, err := s.homework.CountPendingByTeacher(ctx, profile.ID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	return dto.TeacherDashboardResponse{
		TodaySessions:   sessions,
		OpenSession:     openSession,
		ActiveContracts: activeContracts,
		PendingHomework: pendingHomework,
	}, nil
}

func (s *teacherDashboardService) TodaySessions(ctx context.Context, teacherUserID uint) ([]dto.SessionSummary, error) {
	profile, err := s.profile(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := timeutil.DayBounds(s.now(), s.location)
	return s.sessionsBetween(ctx, profile.ID, dayStart, dayEnd)
}

func (s *teacherDashboardService) WeekCalendar(ctx context.Context, teacherUserID uint, weekStart string) (dto.WeekCalendarResponse, error) {
	profile, err := s.profile(ctx, teacherUserID)
	if err != nil {
		return dto.WeekCalendarResponse{}, err
	}

	start := timeutil.WeekStart(s.now(), s.location)
	if weekStart != "" {
		parsed, err := timeutil.ParseLocalDate(weekStart, s.location)
		if err != nil {
			return dto.WeekCalendarResponse{}, &BusinessError{Code: "INVALID_DATE", Message: "weekStart must be formatted YYYY-MM-DD"}
		}
		start = timeutil.WeekStart(parsed, s.location)
	}
	end := start.AddDate(0, 0, 7)

	sessions, err := s.sessionsBetween(ctx, profile.ID, start.UTC(), end.UTC())
	if err != nil {
		return dto.WeekCalendarResponse{}, err
	}

	holidays, err := s.holidays.ListBetween(ctx, start.UTC(), end.UTC())
	if err != nil {
		return dto.WeekCalendarResponse{}, err
	}

	days := make([]dto.CalendarDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		entry := dto.CalendarDay{
			Date:     day.Format("2006-01-02"),
			Sessions: []dto.SessionSummary{},
		}

		for _, holiday := range holidays {
			if timeutil.SameLocalDay(holiday.Date, day, s.location) {
				entry.Holiday = holiday.Name
				break
			}
		}

		for _, session := range sessions {
			if timeutil.SameLocalDay(session.CheckInTime, day, s.location) {
				entry.Sessions = append(entry.Sessions, session)
			}
		}

		days = append(days, entry)
	}

	return dto.WeekCalendarResponse{
		WeekStart: start.Format("2006-01-02"),
		Days:      days,
	}, nil
}
