package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// HomeworkCreateRequest describes the teacher payload for assigning homework.
type HomeworkCreateRequest struct {
	StudentID         uint   `json:"student_id" validate:"required"`
	ContractSessionID *uint  `json:"contract_session_id"`
	Title             string `json:"title" validate:"required,min=3"`
	Instructions      string `json:"instructions" validate:"required"`
	DueDate           string `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// HomeworkStatusRequest moves a homework through its lifecycle.
type HomeworkStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted graded"`
}

// HomeworkResponse is the serialized homework representation. Status reflects
// the read-time overdue derivation.
type HomeworkResponse struct {
	ID                uint       `json:"id"`
	TeacherProfileID  uint       `json:"teacher_profile_id"`
	StudentID         uint       `json:"student_id"`
	ContractSessionID *uint      `json:"contract_session_id"`
	Title             string     `json:"title"`
	Instructions      string     `json:"instructions"`
	DueDate           time.Time  `json:"due_date"`
	Status            string     `json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NewHomeworkResponse converts a model into a DTO, deriving overdue at the
// given instant.
func NewHomeworkResponse(model models.Homework, now time.Time) HomeworkResponse {
	return HomeworkResponse{
		ID:                model.ID,
		TeacherProfileID:  model.TeacherProfileID,
		StudentID:         model.StudentID,
		ContractSessionID: model.ContractSessionID,
		Title:             model.Title,
		Instructions:      model.Instructions,
		DueDate:           model.DueDate,
		Status:            model.EffectiveStatus(now),
		SubmittedAt:       model.SubmittedAt,
		CreatedAt:         model.CreatedAt,
	}
}

// NewHomeworkResponseSlice converts a slice of models into DTOs.
func NewHomeworkResponseSlice(items []models.Homework, now time.Time) []HomeworkResponse {
	responses := make([]HomeworkResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewHomeworkResponse(item, now))
	}
	return responses
}

// GradeCreateRequest describes the teacher payload for recording a grade.
type GradeCreateRequest struct {
	StudentID         uint    `json:"student_id" validate:"required"`
	ContractSessionID *uint   `json:"contract_session_id"`
	Subject           string  `json:"subject" validate:"required,min=2"`
	Score             float64 `json:"score" validate:"min=0"`
	MaxScore          float64 `json:"max_score" validate:"required,gt=0"`
	Comment           string  `json:"comment" validate:"omitempty,max=2000"`
}

// GradeResponse is the serialized grade representation.
type GradeResponse struct {
	ID                uint      `json:"id"`
	TeacherProfileID  uint      `json:"teacher_profile_id"`
	StudentID         uint      `json:"student_id"`
	ContractSessionID *uint     `json:"contract_session_id"`
	Subject           string    `json:"subject"`
	Score             float64   `json:"score"`
	MaxScore          float64   `json:"max_score"`
	Comment           string    `json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewGradeResponse converts a model into a DTO.
func NewGradeResponse(model models.StudentGrade) GradeResponse {
	return GradeResponse{
		ID:                model.ID,
		TeacherProfileID:  model.TeacherProfileID,
		StudentID:         model.StudentID,
		ContractSessionID: model.ContractSessionID,
		Subject:           model.Subject,
		Score:             model.Score,
		MaxScore:          model.MaxScore,
		Comment:           model.Comment,
		CreatedAt:         model.CreatedAt,
	}
}

// NewGradeResponseSlice converts a slice of models into DTOs.
func NewGradeResponseSlice(grades []models.StudentGrade) []GradeResponse {
	responses := make([]GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, NewGradeResponse(grade))
	}
	return responses
}
