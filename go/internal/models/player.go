package models

import "github.com/google/uuid"

// PoolPlayer is a draftable entry seeded at draft creation. The pool is
// read-only afterwards; availability is derived as pool minus picks.
type PoolPlayer struct {
	DraftID    uuid.UUID `json:"draft_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	Role       string    `json:"role"`
}
