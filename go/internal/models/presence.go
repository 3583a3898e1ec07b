package models

import (
	"time"

	"github.com/google/uuid"
)

// PresenceRecord tracks a participant's heartbeat state in a draft room.
// IsReady is sticky until explicitly changed; LastSeenAt is refreshed by
// every heartbeat. Online-ness is derived on read, never stored.
type PresenceRecord struct {
	DraftID    uuid.UUID `json:"draft_id"`
	UserID     uuid.UUID `json:"user_id"`
	IsReady    bool      `json:"is_ready"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
