package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/timeutil"
)

// AdminDashboardService aggregates the admin summary and reports. Reads only;
// no side effects beyond the summary cache.
type AdminDashboardService interface {
	GetSummary(ctx context.Context) (dto.AdminDashboardResponse, error)
	RevenueReport(ctx context.Context, from, to string) (dto.RevenueReportResponse, error)
}

type adminDashboardService struct {
	contracts         repository.ContractRepository
	attendance        repository.AttendanceRepository
	users             repository.UserRepository
	cache             *redis.Client
	cacheTTL          time.Duration
	expiryWindow      time.Duration
	lowHoursThreshold int
	location          *time.Location
	logger            zerolog.Logger
	now               func() time.Time
}

// NewAdminDashboardService constructs the aggregation service.
func NewAdminDashboardService(
	contracts repository.ContractRepository,
	attendance repository.AttendanceRepository,
	users repository.UserRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	expiryAlertDays, lowHoursThreshold int,
	loc *time.Location,
	logger zerolog.Logger,
) AdminDashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &adminDashboardService{
		contracts:         contracts,
		attendance:        attendance,
		users:             users,
		cache:             cache,
		cacheTTL:          cacheTTL,
		expiryWindow:      time.Duration(expiryAlertDays) * 24 * time.Hour,
		lowHoursThreshold: lowHoursThreshold,
		location:          loc,
		logger:            logger.With().Str("component", "admin_dashboard_service").Logger(),
		now:               time.Now,
	}
}

func (s *adminDashboardService) GetSummary(ctx context.Context) (dto.AdminDashboardResponse, error) {
	const cacheKey = "dashboard:admin:summary"
	tracer := otel.Tracer("github.com/edulane/edulane-api/internal/service/admin_dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.aggregate")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AdminDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	now := s.now().UTC()

	activeContracts, err := s.contracts.CountByStatus(ctx, models.ContractStatusActive)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_active_contracts_failed")
		return dto.AdminDashboardResponse{}, err
	}

	teacherCount, err := s.users.CountTeachers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_teachers_failed")
		return dto.AdminDashboardResponse{}, err
	}

	dayStart, dayEnd := timeutil.DayBounds(now, s.location)
	todayAttendance, err := s.attendance.CountCompletedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_today_attendance_failed")
		return dto.AdminDashboardResponse{}, err
	}

	lowHours, err := s.contracts.ListLowHours(ctx, s.lowHoursThreshold)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_low_hours_failed")
		return dto.AdminDashboardResponse{}, err
	}

	expiring, err := s.contracts.ListExpiringBetween(ctx, now, now.Add(s.expiryWindow))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_expiring_failed")
		return dto.AdminDashboardResponse{}, err
	}

	summary := dto.AdminDashboardResponse{
		ActiveContracts:   activeContracts,
		TeacherCount:      teacherCount,
		TodayAttendance:   todayAttendance,
		LowHourContracts:  contractAlerts(lowHours),
		ExpiringContracts: contractAlerts(expiring),
		GeneratedAt:       now,
	}
	span.SetAttributes(
		attribute.Int64("dashboard.active_contracts", activeContracts),
		attribute.Int("dashboard.expiring_contracts", len(expiring)),
	)

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

// RevenueReport approximates revenue over [from, to] as the sum of delivered
// hours times each owning teacher's hourly rate. There is no invoice record
// reconciling this figure.
func (s *adminDashboardService) RevenueReport(ctx context.Context, from, to string) (dto.RevenueReportResponse, error) {
	fromDate, err := timeutil.ParseLocalDate(from, s.location)
	if err != nil {
		return dto.RevenueReportResponse{}, &BusinessError{Code: "INVALID_DATE", Message: fmt.Sprintf("invalid from date %q", from)}
	}
	toDate, err := timeutil.ParseLocalDate(to, s.location)
	if err != nil {
		return dto.RevenueReportResponse{}, &BusinessError{Code: "INVALID_DATE", Message: fmt.Sprintf("invalid to date %q", to)}
	}
	// The to date is inclusive of its whole local day.
	end := toDate.AddDate(0, 0, 1)

	rows, err := s.attendance.RevenueRows(ctx, fromDate.UTC(), end.UTC())
	if err != nil {
		return dto.RevenueReportResponse{}, err
	}

	var totalHours, revenue float64
	for _, row := range rows {
		totalHours += row.HoursUsed
		revenue += row.HoursUsed * row.HourlyRate
	}

	return dto.RevenueReportResponse{
		From:              fromDate.UTC(),
		To:                end.UTC(),
		CompletedSessions: len(rows),
		TotalHours:        totalHours,
		EstimatedRevenue:  revenue,
	}, nil
}

func contractAlerts(contracts []models.ContractSession) []dto.ContractAlert {
	alerts := make([]dto.ContractAlert, 0, len(contracts))
	for _, contract := range contracts {
		alerts = append(alerts, dto.ContractAlert{
			ContractID:     contract.ID,
			Code:           contract.Code,
			StudentID:      contract.StudentID,
			RemainingHours: contract.RemainingHours,
			PeriodEnd:      contract.SubscriptionPeriodEnd,
		})
	}
	return alerts
}
