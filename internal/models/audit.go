package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions written for admin overrides.
const (
	AuditAdjustHours   = "attendance.adjust_hours"
	AuditOverrideTimes = "attendance.override_times"
	AuditAdjustPool    = "contract.adjust_hours"
	AuditStatusChange  = "contract.status_change"
)

// AuditLog captures every admin override as an auditable event.
type AuditLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"not null;index" json:"actor_id"`
	ActorRole  string            `gorm:"size:32;not null" json:"actor_role"`
	Action     string            `gorm:"size:64;not null;index" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entity_type"`
	EntityID   *uint             `json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
