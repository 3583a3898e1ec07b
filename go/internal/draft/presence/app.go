package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Repository defines what the app layer needs from presence storage.
type Repository interface {
	UpsertHeartbeat(ctx context.Context, req HeartbeatRequest, seenAt time.Time) error
	ListByDraft(ctx context.Context, draftID uuid.UUID) ([]models.PresenceRecord, error)
}

// App tracks per-participant heartbeat and readiness state. Writes are
// idempotent upserts; online-ness is derived on read against the clock, so
// no background expiry process exists.
type App struct {
	repo  Repository
	clock clockwork.Clock
}

// NewApp creates a presence App.
func NewApp(repo Repository, clock clockwork.Clock) *App {
	return &App{repo: repo, clock: clock}
}

// Heartbeat refreshes last-seen for the user and, when req.IsReady is
// supplied, overwrites the sticky ready flag.
func (a *App) Heartbeat(ctx context.Context, req HeartbeatRequest) error {
	if err := a.repo.UpsertHeartbeat(ctx, req, a.clock.Now()); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return nil
}

// SnapshotForDraft loads the presence rows for a draft and derives the
// per-participant view. Participants with no record are offline, not ready.
func (a *App) SnapshotForDraft(ctx context.Context, draftID uuid.UUID, participants []models.Participant) (Snapshot, error) {
	records, err := a.repo.ListByDraft(ctx, draftID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list presence records: %w", err)
	}
	return Derive(participants, records, a.clock.Now()), nil
}

// Derive computes the presence snapshot for participants from raw records at
// the given instant. Pure, so gates and tests can evaluate it directly.
func Derive(participants []models.Participant, records []models.PresenceRecord, now time.Time) Snapshot {
	byUser := make(map[uuid.UUID]models.PresenceRecord, len(records))
	for _, r := range records {
		byUser[r.UserID] = r
	}

	snap := Snapshot{Participants: make([]ParticipantPresence, 0, len(participants))}
	for _, p := range participants {
		pp := ParticipantPresence{UserID: p.UserID}
		if r, ok := byUser[p.UserID]; ok {
			seen := r.LastSeenAt
			pp.LastSeenAt = &seen
			pp.IsReady = r.IsReady
			pp.IsOnline = now.Sub(r.LastSeenAt) <= LivenessWindow
		}
		if pp.IsOnline {
			snap.PresentCount++
			if pp.IsReady {
				snap.ReadyCount++
			}
		}
		snap.Participants = append(snap.Participants, pp)
	}
	return snap
}
