package models

import "github.com/google/uuid"

// Participant is a member of a draft. DraftPosition (1..N) is assigned at
// draft creation and never changes.
type Participant struct {
	DraftID       uuid.UUID `json:"draft_id"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	DraftPosition int       `json:"draft_position"`
}
