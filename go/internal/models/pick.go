package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents a committed pick in a draft. Picks are append-only:
// overall_pick values form a dense prefix 1..n with no gaps, and a pick is
// never mutated or deleted once committed.
type Pick struct {
	ID                uuid.UUID `json:"id"`
	DraftID           uuid.UUID `json:"draft_id"`
	OverallPick       int       `json:"overall_pick"`
	RoundNumber       int       `json:"round_number"`
	RoundPick         int       `json:"round_pick"`
	ParticipantUserID uuid.UUID `json:"participant_user_id"`
	PlayerName        string    `json:"player_name"`
	PickedAt          time.Time `json:"picked_at"`
}
