package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edulane/edulane-api/internal/models"
)

func seedContract(t *testing.T, repo ContractRepository, contract models.ContractSession) models.ContractSession {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &contract))
	return contract
}

func TestContractListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t, &models.ContractSession{})
	repo := NewContractRepository(db)
	ctx := context.Background()

	teacherA, teacherB := uint(1), uint(2)
	seedContract(t, repo, models.ContractSession{Code: "CT-A1", TeacherProfileID: teacherA, StudentID: 10, Status: models.ContractStatusActive})
	seedContract(t, repo, models.ContractSession{Code: "CT-A2", TeacherProfileID: teacherA, StudentID: 11, Status: models.ContractStatusCancelled})
	seedContract(t, repo, models.ContractSession{Code: "CT-B1", TeacherProfileID: teacherB, StudentID: 12, Status: models.ContractStatusActive})

	contracts, total, err := repo.List(ctx, ContractFilter{TeacherProfileID: &teacherA})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, contracts, 2)

	contracts, total, err = repo.List(ctx, ContractFilter{Status: models.ContractStatusActive})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	contracts, total, err = repo.List(ctx, ContractFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, contracts, 1)

	contracts, _, err = repo.List(ctx, ContractFilter{StudentIDs: []uint{10, 12}})
	require.NoError(t, err)
	require.Len(t, contracts, 2)
}

func TestContractListExpiringBetweenBounds(t *testing.T) {
	db := setupTestDB(t, &models.ContractSession{})
	repo := NewContractRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in3 := now.AddDate(0, 0, 3)
	in10 := now.AddDate(0, 0, 10)

	seedContract(t, repo, models.ContractSession{Code: "CT-SOON", TeacherProfileID: 1, StudentID: 10, Status: models.ContractStatusActive, SubscriptionPeriodEnd: &in3})
	seedContract(t, repo, models.ContractSession{Code: "CT-LATER", TeacherProfileID: 1, StudentID: 11, Status: models.ContractStatusActive, SubscriptionPeriodEnd: &in10})
	seedContract(t, repo, models.ContractSession{Code: "CT-DONE", TeacherProfileID: 1, StudentID: 12, Status: models.ContractStatusCancelled, SubscriptionPeriodEnd: &in3})
	seedContract(t, repo, models.ContractSession{Code: "CT-OPEN", TeacherProfileID: 1, StudentID: 13, Status: models.ContractStatusActive})

	expiring, err := repo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	require.Equal(t, "CT-SOON", expiring[0].Code)
}

func TestContractListLowHoursOnlyHourlyActive(t *testing.T) {
	db := setupTestDB(t, &models.ContractSession{})
	repo := NewContractRepository(db)
	ctx := context.Background()

	seedContract(t, repo, models.ContractSession{Code: "CT-LOW", TeacherProfileID: 1, StudentID: 10, Status: models.ContractStatusActive, BillingType: models.BillingHourly, RemainingHours: 1})
	seedContract(t, repo, models.ContractSession{Code: "CT-FULL", TeacherProfileID: 1, StudentID: 11, Status: models.ContractStatusActive, BillingType: models.BillingHourly, RemainingHours: 9})
	seedContract(t, repo, models.ContractSession{Code: "CT-MONTH", TeacherProfileID: 1, StudentID: 12, Status: models.ContractStatusActive, BillingType: models.BillingMonthly, RemainingHours: 0})
	seedContract(t, repo, models.ContractSession{Code: "CT-GONE", TeacherProfileID: 1, StudentID: 13, Status: models.ContractStatusExpired, BillingType: models.BillingHourly, RemainingHours: 0})

	low, err := repo.ListLowHours(ctx, 2)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "CT-LOW", low[0].Code)
}

func TestContractCountByStatus(t *testing.T) {
	db := setupTestDB(t, &models.ContractSession{})
	repo := NewContractRepository(db)
	ctx := context.Background()

	seedContract(t, repo, models.ContractSession{Code: "CT-1", TeacherProfileID: 1, StudentID: 10, Status: models.ContractStatusActive})
	seedContract(t, repo, models.ContractSession{Code: "CT-2", TeacherProfileID: 1, StudentID: 11, Status: models.ContractStatusActive})
	seedContract(t, repo, models.ContractSession{Code: "CT-3", TeacherProfileID: 1, StudentID: 12, Status: models.ContractStatusCompleted})

	count, err := repo.CountByStatus(ctx, models.ContractStatusActive)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
