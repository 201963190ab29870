package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// TeacherRegisterRequest onboards an existing teacher account with a profile.
type TeacherRegisterRequest struct {
	UserID     uint    `json:"user_id" validate:"required"`
	Subjects   string  `json:"subjects" validate:"omitempty,max=255"`
	Bio        string  `json:"bio" validate:"omitempty,max=2000"`
	HourlyRate float64 `json:"hourly_rate" validate:"min=0"`
}

// TeacherResponse is the serialized teacher profile.
type TeacherResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Subjects   string    `json:"subjects"`
	Bio        string    `json:"bio"`
	HourlyRate float64   `json:"hourly_rate"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(profile models.TeacherProfile) TeacherResponse {
	return TeacherResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		Subjects:   profile.Subjects,
		Bio:        profile.Bio,
		HourlyRate: profile.HourlyRate,
		Approved:   profile.Approved,
		CreatedAt:  profile.CreatedAt,
	}
}

// NewTeacherResponseSlice converts a slice of models into DTOs.
func NewTeacherResponseSlice(profiles []models.TeacherProfile) []TeacherResponse {
	responses := make([]TeacherResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, NewTeacherResponse(profile))
	}
	return responses
}

// StudentResponse is the serialized student representation.
type StudentResponse struct {
	ID           uint      `json:"id"`
	ParentUserID uint      `json:"parent_user_id"`
	Name         string    `json:"name"`
	GradeLevel   string    `json:"grade_level"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:           student.ID,
		ParentUserID: student.ParentUserID,
		Name:         student.Name,
		GradeLevel:   student.GradeLevel,
		CreatedAt:    student.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}
