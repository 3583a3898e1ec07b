package presence

import (
	"time"

	"github.com/google/uuid"
)

// LivenessWindow is the maximum heartbeat age before a participant counts as
// offline. Clients heartbeat every 15s or faster, so the window tolerates
// two missed beats plus jitter without flapping.
const LivenessWindow = 45 * time.Second

// HeartbeatRequest records that a user is present in a draft room. IsReady
// is optional; when set it overwrites the sticky ready flag.
type HeartbeatRequest struct {
	DraftID uuid.UUID
	UserID  uuid.UUID
	IsReady *bool
}

// ParticipantPresence is the derived presence view for one participant.
type ParticipantPresence struct {
	UserID     uuid.UUID  `json:"user_id"`
	IsOnline   bool       `json:"is_online"`
	IsReady    bool       `json:"is_ready"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// Snapshot is the presence view for a whole draft at one instant.
type Snapshot struct {
	Participants []ParticipantPresence `json:"participants"`
	PresentCount int                   `json:"present_count"`
	ReadyCount   int                   `json:"ready_count"`
}

// AllReady reports whether every one of n participants is simultaneously
// online and ready.
func (s Snapshot) AllReady(n int) bool {
	return s.PresentCount >= n && s.ReadyCount >= n
}
