// Package detail assembles the full draft room view served to clients. The
// shared portion of the view is cached for a short TTL with single-flight
// coalescing, so a room full of polling clients costs one assembly per TTL
// instead of one per request.
package detail

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/deadline"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/draft"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/order"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// DefaultCacheTTL bounds staleness of the shared view. Clients poll at 2-5s,
// so a 2s TTL collapses most concurrent reads without visible lag.
const DefaultCacheTTL = 2 * time.Second

// DraftSource is the slice of the draft app the assembler consumes.
type DraftSource interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error)
}

// PickSource lists committed picks.
type PickSource interface {
	ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
}

// PoolSource lists players still available in a draft's pool.
type PoolSource interface {
	ListAvailable(ctx context.Context, draftID uuid.UUID) ([]models.PoolPlayer, error)
}

// PresenceSource derives the presence snapshot for a draft.
type PresenceSource interface {
	SnapshotForDraft(ctx context.Context, draftID uuid.UUID, participants []models.Participant) (presence.Snapshot, error)
}

// Assembler composes the draft room view.
type Assembler struct {
	drafts   DraftSource
	picks    PickSource
	pool     PoolSource
	presence PresenceSource
	clock    clockwork.Clock
	ttl      time.Duration

	group singleflight.Group
	mu    sync.Mutex
	cache map[uuid.UUID]cacheEntry
}

type cacheEntry struct {
	view      *View
	expiresAt time.Time
}

// NewAssembler creates an Assembler with the default cache TTL.
func NewAssembler(drafts DraftSource, picks PickSource, pool PoolSource, pres PresenceSource, clock clockwork.Clock) *Assembler {
	return &Assembler{
		drafts:   drafts,
		picks:    picks,
		pool:     pool,
		presence: pres,
		clock:    clock,
		ttl:      DefaultCacheTTL,
		cache:    make(map[uuid.UUID]cacheEntry),
	}
}

// WithTTL overrides the cache TTL. A zero or negative TTL disables caching.
func (a *Assembler) WithTTL(ttl time.Duration) *Assembler {
	a.ttl = ttl
	return a
}

// Assemble returns the room view for draftID as seen by viewer. The shared
// portion may be up to one TTL stale; IsCommissioner is computed per call and
// never cached.
func (a *Assembler) Assemble(ctx context.Context, draftID uuid.UUID, viewer *models.User) (*View, error) {
	shared, err := a.sharedView(ctx, draftID)
	if err != nil {
		return nil, err
	}

	view := *shared
	if viewer != nil {
		view.IsCommissioner = viewer.IsAdmin || viewer.ID == shared.Draft.CommissionerUserID
	}
	return &view, nil
}

// Invalidate drops the cached view for a draft. Called after writes so the
// submitter's own refresh reflects their change immediately.
func (a *Assembler) Invalidate(draftID uuid.UUID) {
	a.mu.Lock()
	delete(a.cache, draftID)
	a.mu.Unlock()
}

func (a *Assembler) sharedView(ctx context.Context, draftID uuid.UUID) (*View, error) {
	if a.ttl > 0 {
		a.mu.Lock()
		entry, ok := a.cache[draftID]
		a.mu.Unlock()
		if ok && a.clock.Now().Before(entry.expiresAt) {
			return entry.view, nil
		}
	}

	v, err, _ := a.group.Do(draftID.String(), func() (any, error) {
		view, err := a.build(ctx, draftID)
		if err != nil {
			return nil, err
		}
		if a.ttl > 0 {
			a.mu.Lock()
			a.cache[draftID] = cacheEntry{view: view, expiresAt: a.clock.Now().Add(a.ttl)}
			a.mu.Unlock()
		}
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*View), nil
}

func (a *Assembler) build(ctx context.Context, draftID uuid.UUID) (*View, error) {
	d, err := a.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	participants, err := a.drafts.ListParticipants(ctx, draftID)
	if err != nil {
		return nil, err
	}
	picks, err := a.picks.ListPicks(ctx, draftID)
	if err != nil {
		return nil, err
	}
	available, err := a.pool.ListAvailable(ctx, draftID)
	if err != nil {
		return nil, err
	}
	snap, err := a.presence.SnapshotForDraft(ctx, draftID, participants)
	if err != nil {
		return nil, err
	}

	view := &View{
		Draft:                   *d,
		Participants:            participants,
		Picks:                   picks,
		AvailablePlayers:        available,
		NextPick:                nextPick(d, participants, picks),
		CurrentPickDeadlineAt:   currentDeadline(d, picks),
		ParticipantPresence:     snap.Participants,
		PresentParticipantCount: snap.PresentCount,
		ReadyParticipantCount:   snap.ReadyCount,
	}
	return view, nil
}

// nextPick resolves the slot awaiting submission, nil once the board is full
// or the draft is completed.
func nextPick(d *models.Draft, participants []models.Participant, picks []models.Pick) *NextPick {
	if d.Status == models.DraftStatusCompleted {
		return nil
	}
	overall := len(picks) + 1
	if overall > draft.TotalPickCount(d, participants) {
		return nil
	}
	slot, err := order.Resolve(len(participants), overall)
	if err != nil {
		return nil
	}
	owner := participants[slot.ParticipantIndex]
	return &NextPick{
		OverallPick:       overall,
		RoundNumber:       slot.RoundNumber,
		RoundPick:         slot.RoundPick,
		ParticipantUserID: owner.UserID,
		Username:          owner.Username,
	}
}

// currentDeadline prefers the persisted clock, which accounts for windows
// re-armed on resume, and falls back to deriving one from the pick history.
func currentDeadline(d *models.Draft, picks []models.Pick) *time.Time {
	if d.Status != models.DraftStatusLive {
		return nil
	}
	if d.NextDeadline != nil {
		return d.NextDeadline
	}
	return deadline.Compute(d.PickSeconds, d.Status, d.StartedAt, picks)
}
