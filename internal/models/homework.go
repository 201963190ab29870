package models

import "time"

// Homework status values. Overdue is derived from the due date at read time
// and never stored.
const (
	HomeworkAssigned  = "assigned"
	HomeworkSubmitted = "submitted"
	HomeworkGraded    = "graded"
	HomeworkOverdue   = "overdue"
)

// Homework is an assignment scoped to a teacher-student pair, optionally tied
// to a contract.
type Homework struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	TeacherProfileID  uint       `gorm:"index;not null" json:"teacher_profile_id"`
	StudentID         uint       `gorm:"index;not null" json:"student_id"`
	ContractSessionID *uint      `gorm:"index" json:"contract_session_id"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Instructions      string     `gorm:"type:text" json:"instructions"`
	DueDate           time.Time  `gorm:"not null" json:"due_date"`
	Status            string     `gorm:"size:16;not null;default:assigned;index" json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// EffectiveStatus returns the stored status, or overdue when an assigned
// homework's due date has already passed.
func (h Homework) EffectiveStatus(now time.Time) string {
	if h.Status == HomeworkAssigned && h.DueDate.Before(now) {
		return HomeworkOverdue
	}
	return h.Status
}

// StudentGrade records one score given by a teacher to a student.
type StudentGrade struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TeacherProfileID  uint      `gorm:"index;not null" json:"teacher_profile_id"`
	StudentID         uint      `gorm:"index;not null" json:"student_id"`
	ContractSessionID *uint     `gorm:"index" json:"contract_session_id"`
	Subject           string    `gorm:"size:128;not null" json:"subject"`
	Score             float64   `gorm:"not null" json:"score"`
	MaxScore          float64   `gorm:"not null;default:100" json:"max_score"`
	Comment           string    `gorm:"type:text" json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
