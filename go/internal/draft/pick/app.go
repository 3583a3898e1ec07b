// Package pick coordinates pick submissions. Every pick, whether typed by a
// participant, forced by the commissioner, or made by the deadline scheduler,
// flows through the same validation chain and the same transactional insert,
// so the exactly-once guarantee has a single enforcement point.
package pick

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/draft"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/events"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/order"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Repository defines what the coordinator needs from pick storage.
type Repository interface {
	InsertPick(ctx context.Context, req InsertRequest) (*models.Pick, error)
	ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
	SetNextDeadline(ctx context.Context, draftID uuid.UUID, deadline *time.Time) error
}

// Pool answers whether a player belongs to a draft's pool.
type Pool interface {
	Exists(ctx context.Context, draftID uuid.UUID, playerName string) (bool, error)
}

// DraftService is the slice of the draft app the coordinator consumes.
type DraftService interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error)
	UpdateStatus(ctx context.Context, draftID uuid.UUID, actor models.Actor, target models.DraftStatus, force bool) (*models.Draft, error)
}

// Coordinator validates and commits picks.
type Coordinator struct {
	drafts    DraftService
	repo      Repository
	pool      Pool
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewCoordinator creates a pick Coordinator.
func NewCoordinator(drafts DraftService, repo Repository, pool Pool, publisher events.Publisher, clock clockwork.Clock) *Coordinator {
	return &Coordinator{drafts: drafts, repo: repo, pool: pool, publisher: publisher, clock: clock}
}

// ListPicks returns a draft's committed picks in overall order.
func (c *Coordinator) ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	return c.repo.ListPicks(ctx, draftID)
}

// SubmitPick validates actor's submission against the current board and
// commits it. The committed pick is always attributed to the on-clock
// participant, even when the commissioner or the scheduler submitted it.
// Losing a race with a concurrent submission returns a Conflict; the caller
// refetches the board and decides whether to resubmit.
func (c *Coordinator) SubmitPick(ctx context.Context, actor models.Actor, req SubmitRequest) (*Result, error) {
	playerName := strings.TrimSpace(req.PlayerName)
	if playerName == "" {
		return nil, errs.Validation(errs.ReasonInvalidInput, "player name is required")
	}

	d, err := c.drafts.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	switch d.Status {
	case models.DraftStatusLive:
	case models.DraftStatusCompleted:
		return nil, errs.Conflict(errs.ReasonDraftComplete, "draft %s is complete", d.ID)
	default:
		return nil, errs.Conflict(errs.ReasonNotLive, "draft %s is %s, picks require a live draft", d.ID, d.Status)
	}

	participants, err := c.drafts.ListParticipants(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	picks, err := c.repo.ListPicks(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	total := draft.TotalPickCount(d, participants)
	overall := len(picks) + 1
	if overall > total {
		return nil, errs.Conflict(errs.ReasonDraftComplete, "all %d picks have been made", total)
	}

	slot, err := order.Resolve(len(participants), overall)
	if err != nil {
		return nil, err
	}
	owner := participants[slot.ParticipantIndex]

	if !c.mayPickFor(d, actor, owner) {
		return nil, errs.Forbidden(errs.ReasonNotOnClock,
			"pick %d belongs to %s", overall, owner.Username)
	}

	if err := c.checkAvailability(ctx, req.DraftID, playerName, picks); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	committed, err := c.repo.InsertPick(ctx, InsertRequest{
		ID:                uuid.New(),
		DraftID:           req.DraftID,
		OverallPick:       overall,
		RoundNumber:       slot.RoundNumber,
		RoundPick:         slot.RoundPick,
		ParticipantUserID: owner.UserID,
		PlayerName:        playerName,
		PickedAt:          now,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Pick: committed, DraftCompleted: overall == total}
	if result.DraftCompleted {
		c.completeDraft(ctx, d, total)
	} else {
		c.armNextDeadline(ctx, d, committed.PickedAt)
	}

	c.publishPickMade(ctx, committed, req.AutoPick)

	log.Info().
		Str("draft_id", d.ID.String()).
		Int("overall_pick", committed.OverallPick).
		Str("player", committed.PlayerName).
		Str("participant", owner.UserID.String()).
		Bool("auto_pick", req.AutoPick).
		Bool("completed", result.DraftCompleted).
		Msg("pick committed")
	return result, nil
}

// mayPickFor reports whether actor may submit the pick owned by owner.
func (c *Coordinator) mayPickFor(d *models.Draft, actor models.Actor, owner models.Participant) bool {
	if actor.System || actor.IsAdmin || actor.UserID == d.CommissionerUserID {
		return true
	}
	return actor.UserID == owner.UserID
}

func (c *Coordinator) checkAvailability(ctx context.Context, draftID uuid.UUID, playerName string, picks []models.Pick) error {
	inPool, err := c.pool.Exists(ctx, draftID, playerName)
	if err != nil {
		return err
	}
	if !inPool {
		return errs.Validation(errs.ReasonPlayerUnavailable, "player %q is not in this draft's pool", playerName)
	}
	for _, p := range picks {
		if p.PlayerName == playerName {
			return errs.Conflict(errs.ReasonPlayerUnavailable, "player %q was taken at pick %d", playerName, p.OverallPick)
		}
	}
	return nil
}

// completeDraft marks the draft completed after its final pick. The draft
// app clears next_deadline as part of the transition. A lost race means
// another submitter completed it first, which is fine.
func (c *Coordinator) completeDraft(ctx context.Context, d *models.Draft, total int) {
	if _, err := c.drafts.UpdateStatus(ctx, d.ID, models.SystemActor(), models.DraftStatusCompleted, true); err != nil {
		if errs.KindOf(err) == errs.KindConflict {
			return
		}
		log.Error().Err(err).Str("draft_id", d.ID.String()).Msg("failed to mark draft completed after final pick")
		return
	}

	payload := events.DraftCompletedPayload{
		DraftID:     d.ID.String(),
		TotalPicks:  total,
		CompletedAt: c.clock.Now(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal DraftCompleted payload")
		return
	}
	event := events.Event{ID: uuid.New(), EventType: events.TypeDraftCompleted, DraftID: d.ID, Payload: data}
	if err := c.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("draft_id", d.ID.String()).Msg("failed to publish DraftCompleted event")
	}
}

// armNextDeadline restarts the pick clock from the committed pick. The write
// is guarded on the draft still being live, so a pause that landed between
// the insert and this call wins.
func (c *Coordinator) armNextDeadline(ctx context.Context, d *models.Draft, pickedAt time.Time) {
	var deadline *time.Time
	if d.PickSeconds > 0 {
		t := pickedAt.Add(time.Duration(d.PickSeconds) * time.Second)
		deadline = &t
	}
	if err := c.repo.SetNextDeadline(ctx, d.ID, deadline); err != nil {
		log.Warn().Err(err).Str("draft_id", d.ID.String()).Msg("failed to update pick deadline")
	}
}

func (c *Coordinator) publishPickMade(ctx context.Context, p *models.Pick, autoPick bool) {
	payload := events.PickMadePayload{
		PickID:            p.ID.String(),
		DraftID:           p.DraftID.String(),
		OverallPick:       p.OverallPick,
		RoundNumber:       p.RoundNumber,
		RoundPick:         p.RoundPick,
		ParticipantUserID: p.ParticipantUserID.String(),
		PlayerName:        p.PlayerName,
		AutoPick:          autoPick,
		PickedAt:          p.PickedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal PickMade payload")
		return
	}
	event := events.Event{ID: uuid.New(), EventType: events.TypePickMade, DraftID: p.DraftID, Payload: data}
	if err := c.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("draft_id", p.DraftID.String()).Msg("failed to publish PickMade event")
	}
}
