package models

import "time"

// Attendance status values shared by 1:1 logs and group sessions.
const (
	AttendanceScheduled  = "scheduled"
	AttendanceInProgress = "in_progress"
	AttendanceCompleted  = "completed"
	AttendanceCancelled  = "cancelled"
	AttendanceNoShow     = "no_show"
)

// AttendanceLog records one delivered (or in-progress) 1:1 session. A log is
// open while CheckOutTime is nil; at most one open log may exist per contract.
// Closed logs are immutable outside admin overrides.
type AttendanceLog struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ContractSessionID uint       `gorm:"index;not null" json:"contract_session_id"`
	SessionCode       string     `gorm:"size:64" json:"session_code"`
	CheckInTime       time.Time  `gorm:"not null" json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
	HoursUsed         float64    `gorm:"not null;default:0" json:"hours_used"`
	LessonNotes       string     `gorm:"type:text" json:"lesson_notes"`
	Status            string     `gorm:"size:16;not null;default:in_progress;index" json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Open reports whether the session is still in progress.
func (l AttendanceLog) Open() bool {
	return l.CheckOutTime == nil
}

// GroupClass is a recurring group offering run by one teacher.
type GroupClass struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TeacherProfileID uint      `gorm:"index;not null" json:"teacher_profile_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Capacity         int       `gorm:"not null;default:0" json:"capacity"`
	Weekday          int       `gorm:"not null;default:0" json:"weekday"`
	StartTime        string    `gorm:"size:8" json:"start_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GroupEnrollment links a student's contract (and optionally the parent-paid
// subscription funding it) to a group class.
type GroupEnrollment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	GroupClassID      uint      `gorm:"index;not null" json:"group_class_id"`
	StudentID         uint      `gorm:"index;not null" json:"student_id"`
	ContractSessionID uint      `gorm:"index;not null" json:"contract_session_id"`
	SubscriptionID    *uint     `gorm:"index" json:"subscription_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GroupSession is one delivered meeting of a group class. Checkout fans out
// to one GroupSessionAttendance row per enrolled student.
type GroupSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	GroupClassID uint       `gorm:"index;not null" json:"group_class_id"`
	CheckInTime  time.Time  `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	LessonNotes  string     `gorm:"type:text" json:"lesson_notes"`
	Status       string     `gorm:"size:16;not null;default:in_progress;index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Open reports whether the group session is still in progress.
func (s GroupSession) Open() bool {
	return s.CheckOutTime == nil
}

// GroupSessionAttendance ties one student's contract to one group session and
// records the hours deducted from that student's own pool.
type GroupSessionAttendance struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	GroupSessionID    uint      `gorm:"index;not null" json:"group_session_id"`
	StudentID         uint      `gorm:"index;not null" json:"student_id"`
	ContractSessionID uint      `gorm:"index;not null" json:"contract_session_id"`
	HoursDeducted     int       `gorm:"not null;default:0" json:"hours_deducted"`
	Present           bool      `gorm:"not null;default:true" json:"present"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
