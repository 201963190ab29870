package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edulane/edulane-api/internal/models"
)

func TestFindOpenByContract(t *testing.T) {
	db := setupTestDB(t, &models.ContractSession{}, &models.AttendanceLog{})
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(time.Hour)

	closed := models.AttendanceLog{ContractSessionID: 5, CheckInTime: checkIn, CheckOutTime: &checkOut, Status: models.AttendanceCompleted}
	require.NoError(t, repo.Create(ctx, &closed))

	_, open, err := repo.FindOpenByContract(ctx, 5)
	require.NoError(t, err)
	require.False(t, open)

	current := models.AttendanceLog{ContractSessionID: 5, CheckInTime: checkIn.Add(2 * time.Hour), Status: models.AttendanceInProgress}
	require.NoError(t, repo.Create(ctx, &current))

	found, open, err := repo.FindOpenByContract(ctx, 5)
	require.NoError(t, err)
	require.True(t, open)
	require.Equal(t, current.ID, found.ID)

	_, open, err = repo.FindOpenByContract(ctx, 99)
	require.NoError(t, err)
	require.False(t, open)
}

func TestCountCompletedBetween(t *testing.T) {
	db := setupTestDB(t, &models.AttendanceLog{})
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	inWindow := dayStart.Add(10 * time.Hour)
	before := dayStart.Add(-2 * time.Hour)

	require.NoError(t, repo.Create(ctx, &models.AttendanceLog{ContractSessionID: 1, CheckInTime: inWindow.Add(-time.Hour), CheckOutTime: &inWindow, Status: models.AttendanceCompleted}))
	require.NoError(t, repo.Create(ctx, &models.AttendanceLog{ContractSessionID: 2, CheckInTime: before.Add(-time.Hour), CheckOutTime: &before, Status: models.AttendanceCompleted}))
	require.NoError(t, repo.Create(ctx, &models.AttendanceLog{ContractSessionID: 3, CheckInTime: inWindow, Status: models.AttendanceInProgress}))

	count, err := repo.CountCompletedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRevenueRowsJoinsTeacherRate(t *testing.T) {
	db := setupTestDB(t, &models.TeacherProfile{}, &models.ContractSession{}, &models.AttendanceLog{})
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.TeacherProfile{ID: 3, UserID: 7, HourlyRate: 40}).Error)
	require.NoError(t, db.Create(&models.ContractSession{ID: 5, Code: "CT-REV", TeacherProfileID: 3, StudentID: 10, Status: models.ContractStatusActive}).Error)

	checkOut := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.AttendanceLog{
		ContractSessionID: 5,
		CheckInTime:       checkOut.Add(-90 * time.Minute),
		CheckOutTime:      &checkOut,
		HoursUsed:         1.5,
		Status:            models.AttendanceCompleted,
	}))

	rows, err := repo.RevenueRows(ctx, checkOut.Add(-24*time.Hour), checkOut.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 1.5, rows[0].HoursUsed, 1e-9)
	require.InDelta(t, 40.0, rows[0].HourlyRate, 1e-9)
}
