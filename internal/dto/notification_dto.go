package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// Notification kinds. Persisted entries are stored rows; derived entries are
// synthesized from current state on every list call and never stored.
const (
	NotificationPersisted = "persisted"
	NotificationDerived   = "derived"
)

// NotificationView is the merged read model for one notification. Derived
// entries carry a synthetic key and a negative wire ID so clients can keep
// addressing mark-as-read uniformly; the Kind tag is what the server
// pattern-matches on.
type NotificationView struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Key       string    `json:"key,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPersistedNotificationView converts a stored row into the read model.
func NewPersistedNotificationView(model models.Notification) NotificationView {
	return NotificationView{
		ID:        int64(model.ID),
		Kind:      NotificationPersisted,
		Type:      model.Type,
		Message:   model.Message,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// MarkReadResult reports the outcome of a mark-as-read call. Derived
// notifications always report success without touching storage.
type MarkReadResult struct {
	ID      int64  `json:"id"`
	Kind    string `json:"kind"`
	Read    bool   `json:"read"`
	Message string `json:"message"`
}
