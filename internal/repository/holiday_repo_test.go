package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/models"
)

func TestHolidayListBetweenOrdersAscending(t *testing.T) {
	db := setupTestDB(t, &models.Holiday{})
	repo := NewHolidayRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Holiday{Name: "Summer Day", Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Create(ctx, &models.Holiday{Name: "New Year", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Create(ctx, &models.Holiday{Name: "Next Year", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}))

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	holidays, err := repo.ListBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	require.Equal(t, "New Year", holidays[0].Name)
	require.Equal(t, "Summer Day", holidays[1].Name)
}

func TestHolidayDeleteMissingRow(t *testing.T) {
	db := setupTestDB(t, &models.Holiday{})
	repo := NewHolidayRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, 42)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	holiday := models.Holiday{Name: "Founders Day", Date: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, &holiday))
	require.NoError(t, repo.Delete(ctx, holiday.ID))

	remaining, err := repo.ListBetween(ctx, time.Time{}, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, remaining)
}
