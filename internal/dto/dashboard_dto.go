package dto

import "time"

// SessionSummary is one calendar entry: a 1:1 log or a group session.
type SessionSummary struct {
	ID           uint       `json:"id"`
	Kind         string     `json:"kind"` // one_to_one | group
	ContractID   uint       `json:"contract_id,omitempty"`
	GroupClassID uint       `json:"group_class_id,omitempty"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	HoursUsed    float64    `json:"hours_used"`
	Status       string     `json:"status"`
}

// TeacherDashboardResponse summarizes a teacher's day.
type TeacherDashboardResponse struct {
	TodaySessions   []SessionSummary `json:"today_sessions"`
	OpenSession     *SessionSummary  `json:"open_session"`
	ActiveContracts int64            `json:"active_contracts"`
	PendingHomework int64            `json:"pending_homework"`
}

// CalendarDay is one day in the week calendar view.
type CalendarDay struct {
	Date     string           `json:"date"`
	Holiday  string           `json:"holiday,omitempty"`
	Sessions []SessionSummary `json:"sessions"`
}

// WeekCalendarResponse is a teacher's week, Monday first.
type WeekCalendarResponse struct {
	WeekStart string        `json:"week_start"`
	Days      []CalendarDay `json:"days"`
}

// ContractAlert is a dashboard line item for a contract needing attention.
type ContractAlert struct {
	ContractID     uint       `json:"contract_id"`
	Code           string     `json:"code"`
	StudentID      uint       `json:"student_id"`
	RemainingHours int        `json:"remaining_hours"`
	PeriodEnd      *time.Time `json:"period_end"`
}

// AdminDashboardResponse is the cached admin summary.
type AdminDashboardResponse struct {
	ActiveContracts   int64           `json:"active_contracts"`
	TeacherCount      int64           `json:"teacher_count"`
	TodayAttendance   int64           `json:"today_attendance"`
	LowHourContracts  []ContractAlert `json:"low_hour_contracts"`
	ExpiringContracts []ContractAlert `json:"expiring_contracts"`
	GeneratedAt       time.Time       `json:"generated_at"`
	CacheHit          bool            `json:"cache_hit"`
}

// RevenueReportResponse approximates revenue for a period as the sum of
// hours delivered times the owning teacher's hourly rate. Not a ledger.
type RevenueReportResponse struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	CompletedSessions int       `json:"completed_sessions"`
	TotalHours        float64   `json:"total_hours"`
	EstimatedRevenue  float64   `json:"estimated_revenue"`
}
