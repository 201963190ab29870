package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/timeutil"
)

// HolidayService manages school-wide non-teaching days.
type HolidayService interface {
	Create(ctx context.Context, payload dto.HolidayCreateRequest) (dto.HolidayResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByYear(ctx context.Context, year int) ([]dto.HolidayResponse, error)
}

type holidayService struct {
	holidays  repository.HolidayRepository
	validator *validator.Validate
	location  *time.Location
	logger    zerolog.Logger
}

// NewHolidayService builds the holiday service.
func NewHolidayService(holidays repository.HolidayRepository, validate *validator.Validate, loc *time.Location, logger zerolog.Logger) HolidayService {
	if loc == nil {
		loc = time.UTC
	}
	return &holidayService{
		holidays:  holidays,
		validator: validate,
		location:  loc,
		logger:    logger.With().Str("component", "holiday_service").Logger(),
	}
}

func (s *holidayService) Create(ctx context.Context, payload dto.HolidayCreateRequest) (dto.HolidayResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HolidayResponse{}, err
	}

	date, err := timeutil.ParseLocalDate(payload.Date, s.location)
	if err != nil {
		return dto.HolidayResponse{}, fmt.Errorf("invalid holiday date: %w", err)
	}

	holiday := models.Holiday{Name: payload.Name, Date: date.UTC()}
	if err := s.holidays.Create(ctx, &holiday); err != nil {
		return dto.HolidayResponse{}, err
	}

	s.logger.Info().Uint("holiday_id", holiday.ID).Str("name", holiday.Name).Msg("holiday created")
	return dto.NewHolidayResponse(holiday), nil
}

func (s *holidayService) Delete(ctx context.Context, id uint) error {
	if err := s.holidays.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	return nil
}

// ListByYear returns only holidays whose date falls inside the given local
// year, ordered by date ascending.
func (s *holidayService) ListByYear(ctx context.Context, year int) ([]dto.HolidayResponse, error) {
	start, end := timeutil.YearBounds(year, s.location)
	holidays, err := s.holidays.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return dto.NewHolidayResponseSlice(holidays), nil
}
