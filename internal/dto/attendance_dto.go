package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// CheckInRequest starts a 1:1 session against a contract.
type CheckInRequest struct {
	ContractID uint `json:"contract_id" validate:"required"`
}

// CheckInResponse reports the created session.
type CheckInResponse struct {
	SessionID   uint   `json:"session_id"`
	SessionCode string `json:"session_code"`
	Message     string `json:"message"`
}

// CheckOutRequest closes a 1:1 session. Lesson notes are mandatory.
type CheckOutRequest struct {
	SessionID   uint   `json:"session_id" validate:"required"`
	LessonNotes string `json:"lesson_notes"`
}

// CheckOutResponse reports the closed session and the hours consumed.
type CheckOutResponse struct {
	Success        bool    `json:"success"`
	HoursUsed      float64 `json:"hours_used"`
	RemainingHours int     `json:"remaining_hours"`
	Message        string  `json:"message"`
}

// GroupCheckInRequest starts a group session for a class.
type GroupCheckInRequest struct {
	GroupClassID uint `json:"group_class_id" validate:"required"`
}

// GroupCheckOutRequest closes a group session.
type GroupCheckOutRequest struct {
	GroupSessionID uint   `json:"group_session_id" validate:"required"`
	LessonNotes    string `json:"lesson_notes"`
}

// GroupCheckOutResponse reports the fan-out result.
type GroupCheckOutResponse struct {
	Success       bool    `json:"success"`
	HoursUsed     float64 `json:"hours_used"`
	StudentsCount int     `json:"students_count"`
	Message       string  `json:"message"`
}

// SessionStatusRequest marks an open session cancelled or no-show.
type SessionStatusRequest struct {
	SessionID uint   `json:"session_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=cancelled no_show"`
}

// AdjustHoursRequest force-sets the recorded hours on a completed log.
type AdjustHoursRequest struct {
	Hours  float64 `json:"hours" validate:"min=0"`
	Reason string  `json:"reason" validate:"required,min=3"`
}

// OverrideTimesRequest force-sets check-in/check-out timestamps.
type OverrideTimesRequest struct {
	CheckInTime  *string `json:"check_in_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CheckOutTime *string `json:"check_out_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Reason       string  `json:"reason" validate:"required,min=3"`
}

// AttendanceLogResponse is the serialized attendance log.
type AttendanceLogResponse struct {
	ID                uint       `json:"id"`
	ContractSessionID uint       `json:"contract_session_id"`
	SessionCode       string     `json:"session_code"`
	CheckInTime       time.Time  `json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
	HoursUsed         float64    `json:"hours_used"`
	LessonNotes       string     `json:"lesson_notes"`
	Status            string     `json:"status"`
}

// NewAttendanceLogResponse converts a model into a DTO.
func NewAttendanceLogResponse(model models.AttendanceLog) AttendanceLogResponse {
	return AttendanceLogResponse{
		ID:                model.ID,
		ContractSessionID: model.ContractSessionID,
		SessionCode:       model.SessionCode,
		CheckInTime:       model.CheckInTime,
		CheckOutTime:      model.CheckOutTime,
		HoursUsed:         model.HoursUsed,
		LessonNotes:       model.LessonNotes,
		Status:            model.Status,
	}
}
