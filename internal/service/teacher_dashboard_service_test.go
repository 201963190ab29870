package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edulane/edulane-api/internal/models"
)

func newTeacherDashboardFixture(t *testing.T, attendance *fakeAttendanceRepo, groups *fakeGroupRepo, contracts *fakeContractRepo, homework *fakeHomeworkRepo, holidays *fakeHolidayRepo) *teacherDashboardService {
	t.Helper()
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	svc := NewTeacherDashboardService(
		attendance, groups, contracts, homework, holidays, users,
		time.UTC, testLogger(),
	).(*teacherDashboardService)
	return svc
}

func TestDashboardMergesBothSessionKinds(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	attendance := newFakeAttendanceRepo()
	attendance.teacherLogs = []models.AttendanceLog{
		{ID: 1, ContractSessionID: 5, CheckInTime: now.Add(-2 * time.Hour), Status: models.AttendanceInProgress},
	}

	contracts := newFakeContractRepo(activeHourlyContract(5, 4, now))
	groups := newFakeGroupRepo(contracts)
	groups.teacherSessions = []models.GroupSession{
		{ID: 2, GroupClassID: 9, CheckInTime: now.Add(-time.Hour), Status: models.AttendanceCompleted},
	}

	homework := newFakeHomeworkRepo()
	pending := models.Homework{TeacherProfileID: 3, StudentID: 10, Status: models.HomeworkAssigned, DueDate: now.Add(24 * time.Hour)}
	require.NoError(t, homework.Create(context.Background(), &pending))

	svc := newTeacherDashboardFixture(t, attendance, groups, contracts, homework, newFakeHolidayRepo())
	svc.now = func() time.Time { return now }

	dashboard, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, dashboard.TodaySessions, 2)
	require.NotNil(t, dashboard.OpenSession)
	require.Equal(t, uint(1), dashboard.OpenSession.ID)
	require.Equal(t, "one_to_one", dashboard.OpenSession.Kind)
	require.Equal(t, int64(1), dashboard.ActiveContracts)
	require.Equal(t, int64(1), dashboard.PendingHomework)
}

func TestDashboardUnknownTeacher(t *testing.T) {
	contracts := newFakeContractRepo()
	svc := newTeacherDashboardFixture(t, newFakeAttendanceRepo(), newFakeGroupRepo(contracts), contracts, newFakeHomeworkRepo(), newFakeHolidayRepo())

	_, err := svc.Dashboard(context.Background(), 999)
	require.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestWeekCalendarMarksHolidaysAndBucketsSessions(t *testing.T) {
	// Monday 2026-03-02.
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	attendance := newFakeAttendanceRepo()
	attendance.teacherLogs = []models.AttendanceLog{
		{ID: 1, ContractSessionID: 5, CheckInTime: time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC), Status: models.AttendanceCompleted},
	}

	contracts := newFakeContractRepo()
	holidays := newFakeHolidayRepo(models.Holiday{
		ID: 1, Name: "Founders Day", Date: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	})

	svc := newTeacherDashboardFixture(t, attendance, newFakeGroupRepo(contracts), contracts, newFakeHomeworkRepo(), holidays)
	svc.now = func() time.Time { return now }

	calendar, err := svc.WeekCalendar(context.Background(), 7, "")
	require.NoError(t, err)
	require.Equal(t, "2026-03-02", calendar.WeekStart)
	require.Len(t, calendar.Days, 7)

	require.Len(t, calendar.Days[1].Sessions, 1, "Tuesday holds the session")
	require.Empty(t, calendar.Days[0].Sessions)
	require.Equal(t, "Founders Day", calendar.Days[4].Holiday)
}

func TestWeekCalendarRejectsBadWeekStart(t *testing.T) {
	contracts := newFakeContractRepo()
	svc := newTeacherDashboardFixture(t, newFakeAttendanceRepo(), newFakeGroupRepo(contracts), contracts, newFakeHomeworkRepo(), newFakeHolidayRepo())

	_, err := svc.WeekCalendar(context.Background(), 7, "March 2nd")

	var business *BusinessError
	require.ErrorAs(t, err, &business)
	require.Equal(t, "INVALID_DATE", business.Code)
}
