package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the status of a draft.
type DraftStatus string

const (
	DraftStatusScheduled DraftStatus = "scheduled"
	DraftStatusLive      DraftStatus = "live"
	DraftStatusPaused    DraftStatus = "paused"
	DraftStatusCompleted DraftStatus = "completed"
)

// Valid reports whether s is one of the known draft statuses.
func (s DraftStatus) Valid() bool {
	switch s {
	case DraftStatusScheduled, DraftStatusLive, DraftStatusPaused, DraftStatusCompleted:
		return true
	}
	return false
}

// Draft represents a draft instance. RoundCount and the participant count
// together fix the total number of picks; StartedAt is set exactly once, on
// the first transition into live.
type Draft struct {
	ID                 uuid.UUID   `json:"id"`
	Status             DraftStatus `json:"status"`
	RoundCount         int         `json:"round_count"`
	PickSeconds        int         `json:"pick_seconds"`
	ScheduledAt        *time.Time  `json:"scheduled_at,omitempty"`
	StartedAt          *time.Time  `json:"started_at,omitempty"`
	NextDeadline       *time.Time  `json:"next_deadline,omitempty"`
	CommissionerUserID uuid.UUID   `json:"commissioner_user_id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
