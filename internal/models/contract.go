package models

import "time"

// Contract status values. Contracts are cancelled, never deleted.
const (
	ContractStatusActive    = "active"
	ContractStatusCancelled = "cancelled"
	ContractStatusCompleted = "completed"
	ContractStatusExpired   = "expired"
)

// Billing type values for a contract.
const (
	BillingHourly  = "hourly"
	BillingMonthly = "monthly"
)

// ContractSession is a 1:1 teacher-student engagement governing session
// access. RemainingHours is the legacy hour pool; under monthly billing it is
// not authoritative and access is governed by SubscriptionPeriodEnd alone.
type ContractSession struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Code                  string     `gorm:"size:64;uniqueIndex;not null" json:"code"`
	TeacherProfileID      uint       `gorm:"index;not null" json:"teacher_profile_id"`
	StudentID             uint       `gorm:"index;not null" json:"student_id"`
	BillingType           string     `gorm:"size:16;not null;default:monthly" json:"billing_type"`
	PackageHours          int        `gorm:"not null;default:0" json:"package_hours"`
	RemainingHours        int        `gorm:"not null;default:0" json:"remaining_hours"`
	SubscriptionPeriodEnd *time.Time `json:"subscription_period_end"`
	Status                string     `gorm:"size:16;not null;default:active;index" json:"status"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// HasActiveAccess reports whether the contract grants access at the given
// instant. Recomputed from wall-clock time on every read, never cached.
func (c ContractSession) HasActiveAccess(now time.Time) bool {
	return c.Status == ContractStatusActive &&
		c.SubscriptionPeriodEnd != nil &&
		!c.SubscriptionPeriodEnd.Before(now)
}

// Subscription kind values.
const (
	SubscriptionOneToOne = "one_to_one"
	SubscriptionGroup    = "group"
)

// Subscription is a parent-paid, time-boxed access grant. It is a billing
// concept independent of ContractSession but referenced by group enrollments.
type Subscription struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ParentUserID uint       `gorm:"index;not null" json:"parent_user_id"`
	StudentID    uint       `gorm:"index;not null" json:"student_id"`
	Kind         string     `gorm:"size:16;not null;default:one_to_one" json:"kind"`
	PeriodEnd    *time.Time `json:"period_end"`
	Status       string     `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasActiveAccess mirrors the contract predicate for subscriptions.
func (s Subscription) HasActiveAccess(now time.Time) bool {
	return s.Status == ContractStatusActive &&
		s.PeriodEnd != nil &&
		!s.PeriodEnd.Before(now)
}
