package pick

import (
	"time"

	"github.com/google/uuid"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// SubmitRequest carries one pick submission into the coordinator.
type SubmitRequest struct {
	DraftID    uuid.UUID
	PlayerName string
	// AutoPick marks submissions made by the deadline scheduler on behalf
	// of the on-clock participant.
	AutoPick bool
}

// InsertRequest is the fully resolved pick handed to storage. OverallPick
// doubles as the expected slot: the insert fails with a conflict when the
// draft no longer has exactly OverallPick-1 committed picks.
type InsertRequest struct {
	ID                uuid.UUID
	DraftID           uuid.UUID
	OverallPick       int
	RoundNumber       int
	RoundPick         int
	ParticipantUserID uuid.UUID
	PlayerName        string
	PickedAt          time.Time
}

// Result reports a committed pick and whether it closed out the draft.
type Result struct {
	Pick           *models.Pick
	DraftCompleted bool
}
