package models

import "time"

// Role values carried in JWT claims and stored on users.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

// ApplicationUser is an authenticated account: admin, teacher, or parent.
type ApplicationUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      string    `gorm:"size:32;not null;index" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeacherProfile holds teaching details for exactly one user account.
type TeacherProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Subjects   string    `gorm:"size:255" json:"subjects"`
	Bio        string    `gorm:"type:text" json:"bio"`
	HourlyRate float64   `gorm:"not null;default:0" json:"hourly_rate"`
	Approved   bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Student is a learner belonging to exactly one parent account.
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ParentUserID uint      `gorm:"index;not null" json:"parent_user_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	GradeLevel   string    `gorm:"size:64" json:"grade_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
