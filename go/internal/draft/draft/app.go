package draft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/events"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Repository defines what the app layer needs from draft storage.
type Repository interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error)
	UpdateStatusGuarded(ctx context.Context, req UpdateStatusGuardedRequest) (*models.Draft, error)
}

// PresenceGate is the readiness check consulted before a draft may go live.
type PresenceGate interface {
	SnapshotForDraft(ctx context.Context, draftID uuid.UUID, participants []models.Participant) (presence.Snapshot, error)
}

// App owns the draft status state machine: scheduled → live ⇄ paused, and
// live/paused → completed. Completed is terminal and self-transitions are
// idempotent no-ops.
type App struct {
	repo      Repository
	gate      PresenceGate
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewApp creates a draft App.
func NewApp(repo Repository, gate PresenceGate, publisher events.Publisher, clock clockwork.Clock) *App {
	return &App{repo: repo, gate: gate, publisher: publisher, clock: clock}
}

// GetDraft retrieves a draft by ID.
func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return a.repo.GetDraft(ctx, id)
}

// ListParticipants returns a draft's participants ordered by draft position.
func (a *App) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error) {
	return a.repo.ListParticipants(ctx, draftID)
}

// UpdateStatus validates and applies a status transition requested by actor.
// Only the commissioner (draft creator, a global admin, or the system actor)
// may transition a draft. Going live requires every participant online and
// ready unless force is set. The first arrival at live stamps started_at.
func (a *App) UpdateStatus(ctx context.Context, draftID uuid.UUID, actor models.Actor, target models.DraftStatus, force bool) (*models.Draft, error) {
	if !target.Valid() {
		return nil, errs.Validation(errs.ReasonInvalidStatus, "unknown draft status %q", target)
	}

	draft, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if !a.isCommissioner(draft, actor) {
		return nil, errs.Forbidden(errs.ReasonNotCommissioner, "only the commissioner may change draft status")
	}

	// Requesting the current status is an idempotent no-op.
	if draft.Status == target {
		return draft, nil
	}

	if err := validateTransition(draft.Status, target); err != nil {
		return nil, err
	}

	participants, err := a.repo.ListParticipants(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if target == models.DraftStatusLive && !force {
		snap, err := a.gate.SnapshotForDraft(ctx, draftID, participants)
		if err != nil {
			return nil, err
		}
		if !snap.AllReady(len(participants)) {
			return nil, errs.Validation(errs.ReasonParticipantsNotReady,
				"%d of %d participants present, %d ready", snap.PresentCount, len(participants), snap.ReadyCount)
		}
	}

	now := a.clock.Now()
	req := UpdateStatusGuardedRequest{
		DraftID:    draftID,
		FromStatus: string(draft.Status),
		ToStatus:   string(target),
	}
	if target == models.DraftStatusLive {
		if draft.StartedAt == nil {
			req.StartedAt = &now
		}
		// Re-arm a full pick window from now. Pausing clears the deadline,
		// so resuming grants the on-clock participant fresh time.
		if draft.PickSeconds > 0 {
			deadline := now.Add(time.Duration(draft.PickSeconds) * time.Second)
			req.NextDeadline = &deadline
		}
	}

	updated, err := a.repo.UpdateStatusGuarded(ctx, req)
	if err != nil {
		return nil, err
	}

	a.publishStatusChanged(ctx, draft.Status, updated)

	log.Info().
		Str("draft_id", draftID.String()).
		Str("from", string(draft.Status)).
		Str("to", string(target)).
		Bool("force", force).
		Msg("draft status updated")
	return updated, nil
}

func (a *App) isCommissioner(draft *models.Draft, actor models.Actor) bool {
	return actor.System || actor.IsAdmin || actor.UserID == draft.CommissionerUserID
}

// validateTransition rejects illegal edges of the status machine.
func validateTransition(current, target models.DraftStatus) error {
	allowed := map[models.DraftStatus][]models.DraftStatus{
		models.DraftStatusScheduled: {models.DraftStatusLive},
		models.DraftStatusLive:      {models.DraftStatusPaused, models.DraftStatusCompleted},
		models.DraftStatusPaused:    {models.DraftStatusLive, models.DraftStatusCompleted},
		models.DraftStatusCompleted: {},
	}

	for _, next := range allowed[current] {
		if next == target {
			return nil
		}
	}
	return errs.Validation(errs.ReasonInvalidTransition, "transition from %s to %s is not allowed", current, target)
}

func (a *App) publishStatusChanged(ctx context.Context, from models.DraftStatus, draft *models.Draft) {
	payload := events.DraftStatusChangedPayload{
		DraftID:   draft.ID.String(),
		From:      string(from),
		To:        string(draft.Status),
		ChangedAt: a.clock.Now(),
		StartedAt: draft.StartedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal DraftStatusChanged payload")
		return
	}
	event := events.Event{
		ID:        uuid.New(),
		EventType: events.TypeDraftStatusChanged,
		DraftID:   draft.ID,
		Payload:   data,
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("draft_id", draft.ID.String()).Msg("failed to publish DraftStatusChanged event")
	}
}

// TotalPickCount derives the fixed number of picks in a draft.
func TotalPickCount(draft *models.Draft, participants []models.Participant) int {
	return len(participants) * draft.RoundCount
}
