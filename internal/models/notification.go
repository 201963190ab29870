package models

import "time"

// Notification type values for persisted rows.
const (
	NotificationTeacherPending   = "teacher_pending"
	NotificationContractCreated  = "contract_created"
	NotificationContractExpiring = "contract_expiring"
	NotificationHomeworkAssigned = "homework_assigned"
	NotificationGradeRecorded    = "grade_recorded"
)

// Notification is an append-only per-user message. Read flips once.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holiday is a school-wide non-teaching day.
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
