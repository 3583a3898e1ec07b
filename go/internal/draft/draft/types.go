package draft

import (
	"time"

	"github.com/google/uuid"
)

// UpdateStatusGuardedRequest performs the validate-write-recheck discipline
// in one statement: the write only lands if the draft still has FromStatus,
// so two commissioners racing a transition resolve to exactly one winner.
type UpdateStatusGuardedRequest struct {
	DraftID    uuid.UUID
	FromStatus string
	ToStatus   string

	// StartedAt is coalesced into started_at, so it is only ever set once.
	StartedAt *time.Time

	// NextDeadline replaces the persisted deadline; nil clears it.
	NextDeadline *time.Time
}

// NextDeadline is the soonest pick deadline across live drafts, consumed by
// the auto-pick scheduler.
type NextDeadline struct {
	DraftID  uuid.UUID  `json:"draft_id"`
	Deadline *time.Time `json:"deadline"`
}
