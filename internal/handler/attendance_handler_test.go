package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/service"
)

type stubAttendanceService struct {
	checkIn  func(teacherUserID, contractID uint) (dto.CheckInResponse, error)
	checkOut func(teacherUserID, logID uint, notes string) (dto.CheckOutResponse, error)
	adjust   func(actor service.Actor, logID uint, hours float64, reason string) (dto.AttendanceLogResponse, error)
	override func(actor service.Actor, logID uint, checkIn, checkOut *time.Time, reason string) (dto.AttendanceLogResponse, error)
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, teacherUserID, contractID uint) (dto.CheckInResponse, error) {
	if s.checkIn != nil {
		return s.checkIn(teacherUserID, contractID)
	}
	return dto.CheckInResponse{}, nil
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, teacherUserID, logID uint, lessonNotes string) (dto.CheckOutResponse, error) {
	if s.checkOut != nil {
		return s.checkOut(teacherUserID, logID, lessonNotes)
	}
	return dto.CheckOutResponse{}, nil
}

func (s *stubAttendanceService) MarkSessionStatus(ctx context.Context, teacherUserID, logID uint, status string) (dto.AttendanceLogResponse, error) {
	return dto.AttendanceLogResponse{}, nil
}

func (s *stubAttendanceService) CheckInGroup(ctx context.Context, teacherUserID, groupClassID uint) (dto.CheckInResponse, error) {
	return dto.CheckInResponse{}, nil
}

func (s *stubAttendanceService) CheckOutGroup(ctx context.Context, teacherUserID, groupSessionID uint, lessonNotes string) (dto.GroupCheckOutResponse, error) {
	return dto.GroupCheckOutResponse{}, nil
}

func (s *stubAttendanceService) AdjustHours(ctx context.Context, actor service.Actor, logID uint, hours float64, reason string) (dto.AttendanceLogResponse, error) {
	if s.adjust != nil {
		return s.adjust(actor, logID, hours, reason)
	}
	return dto.AttendanceLogResponse{}, nil
}

func (s *stubAttendanceService) OverrideTimes(ctx context.Context, actor service.Actor, logID uint, checkIn, checkOut *time.Time, reason string) (dto.AttendanceLogResponse, error) {
	if s.override != nil {
		return s.override(actor, logID, checkIn, checkOut, reason)
	}
	return dto.AttendanceLogResponse{}, nil
}

func newAttendanceApp(stub *stubAttendanceService) *fiber.App {
	app := fiber.New()
	teacher := app.Group("/teacher", withLocals(7, models.RoleTeacher))
	NewAttendanceHandler(stub, false, testLogger()).Register(teacher)
	return app
}

func TestCheckInReturnsCreated(t *testing.T) {
	stub := &stubAttendanceService{
		checkIn: func(teacherUserID, contractID uint) (dto.CheckInResponse, error) {
			require.Equal(t, uint(7), teacherUserID)
			require.Equal(t, uint(5), contractID)
			return dto.CheckInResponse{SessionID: 1, SessionCode: "SES-000001"}, nil
		},
	}
	app := newAttendanceApp(stub)

	request := httptest.NewRequest(fiber.MethodPost, "/teacher/check-in", strings.NewReader(`{"contract_id":5}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)

	var body struct {
		Data dto.CheckInResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	require.Equal(t, "SES-000001", body.Data.SessionCode)
}

func TestCheckOutBusinessErrorMapsTo400WithCode(t *testing.T) {
	stub := &stubAttendanceService{
		checkOut: func(teacherUserID, logID uint, notes string) (dto.CheckOutResponse, error) {
			return dto.CheckOutResponse{}, service.ErrNotesRequired
		},
	}
	app := newAttendanceApp(stub)

	request := httptest.NewRequest(fiber.MethodPost, "/teacher/check-out", strings.NewReader(`{"session_id":1}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, response.StatusCode)

	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	require.Equal(t, "NOTES_REQUIRED", body.Code)
}

func TestCheckInMalformedBody(t *testing.T) {
	app := newAttendanceApp(&stubAttendanceService{})

	request := httptest.NewRequest(fiber.MethodPost, "/teacher/check-in", strings.NewReader(`{"contract_id":`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestInternalErrorRedactedOutsideDevelopment(t *testing.T) {
	stub := &stubAttendanceService{
		checkOut: func(teacherUserID, logID uint, notes string) (dto.CheckOutResponse, error) {
			return dto.CheckOutResponse{}, context.DeadlineExceeded
		},
	}
	app := newAttendanceApp(stub)

	request := httptest.NewRequest(fiber.MethodPost, "/teacher/check-out", strings.NewReader(`{"session_id":1,"lesson_notes":"ok"}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, response.StatusCode)

	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	require.Equal(t, "INTERNAL", body.Code)
	require.Equal(t, "internal server error", body.Error)
}

func TestOverrideTimesRequiresAnEndpoint(t *testing.T) {
	app := fiber.New()
	admin := app.Group("/admin/attendance", withLocals(1, models.RoleAdmin))
	NewAdminAttendanceHandler(&stubAttendanceService{}, false, testLogger()).Register(admin)

	request := httptest.NewRequest(fiber.MethodPost, "/admin/attendance/1/override-times", strings.NewReader(`{"reason":"fixing"}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestAdjustHoursPassesActor(t *testing.T) {
	var captured service.Actor
	stub := &stubAttendanceService{
		adjust: func(actor service.Actor, logID uint, hours float64, reason string) (dto.AttendanceLogResponse, error) {
			captured = actor
			return dto.AttendanceLogResponse{ID: logID, HoursUsed: hours}, nil
		},
	}

	app := fiber.New()
	admin := app.Group("/admin/attendance", withLocals(1, models.RoleAdmin))
	NewAdminAttendanceHandler(stub, false, testLogger()).Register(admin)

	request := httptest.NewRequest(fiber.MethodPost, "/admin/attendance/9/adjust-hours", strings.NewReader(`{"hours":1.5,"reason":"typo"}`))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	require.Equal(t, service.Actor{ID: 1, Role: models.RoleAdmin}, captured)
}
