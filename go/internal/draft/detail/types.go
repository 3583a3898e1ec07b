package detail

import (
	"time"

	"github.com/google/uuid"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// NextPick describes the slot awaiting a submission.
type NextPick struct {
	OverallPick       int       `json:"overall_pick"`
	RoundNumber       int       `json:"round_number"`
	RoundPick         int       `json:"round_pick"`
	ParticipantUserID uuid.UUID `json:"participant_user_id"`
	Username          string    `json:"username"`
}

// View is the full draft room state returned to clients. Everything except
// IsCommissioner is identical for every viewer of the same draft.
type View struct {
	Draft                   models.Draft                   `json:"draft"`
	Participants            []models.Participant           `json:"participants"`
	Picks                   []models.Pick                  `json:"picks"`
	AvailablePlayers        []models.PoolPlayer            `json:"available_players"`
	NextPick                *NextPick                      `json:"next_pick"`
	CurrentPickDeadlineAt   *time.Time                     `json:"current_pick_deadline_at"`
	ParticipantPresence     []presence.ParticipantPresence `json:"participant_presence"`
	PresentParticipantCount int                            `json:"present_participant_count"`
	ReadyParticipantCount   int                            `json:"ready_participant_count"`
	IsCommissioner          bool                           `json:"is_commissioner"`
}
