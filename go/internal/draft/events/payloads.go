// Package events defines the domain events emitted after draft state
// changes commit, plus the NATS JetStream publisher that fans them out to
// room gateways and the auto-pick scheduler. Correctness never depends on
// the bus: a fresh read always reflects committed state.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types carried on the draft.events.> subjects.
const (
	TypeDraftStatusChanged = "DraftStatusChanged"
	TypePickMade           = "PickMade"
	TypeDraftCompleted     = "DraftCompleted"
)

// Event is the envelope handed to a Publisher. Payload is a marshaled
// payload struct from this package.
type Event struct {
	ID        uuid.UUID
	EventType string
	DraftID   uuid.UUID
	Payload   []byte
}

// DraftStatusChangedPayload announces a committed status transition.
type DraftStatusChangedPayload struct {
	DraftID   string     `json:"draft_id"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	ChangedAt time.Time  `json:"changed_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// PickMadePayload announces a committed pick.
type PickMadePayload struct {
	PickID            string    `json:"pick_id"`
	DraftID           string    `json:"draft_id"`
	OverallPick       int       `json:"overall_pick"`
	RoundNumber       int       `json:"round_number"`
	RoundPick         int       `json:"round_pick"`
	ParticipantUserID string    `json:"participant_user_id"`
	PlayerName        string    `json:"player_name"`
	AutoPick          bool      `json:"auto_pick"`
	PickedAt          time.Time `json:"picked_at"`
}

// DraftCompletedPayload announces that the final pick slot was filled.
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
}
