// Package orchestrator watches live draft deadlines and submits auto-picks
// for participants who run out the clock. It is advisory: the coordinator's
// transactional insert stays the single enforcement point, so a human pick
// racing the buzzer simply wins and the auto-pick loses with a conflict.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/draft"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/pick"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Deadlines is the slice of draft storage the scheduler polls.
type Deadlines interface {
	FetchNextDeadline(ctx context.Context) (*draft.NextDeadline, error)
	FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// Submitter commits a pick on behalf of the on-clock participant.
type Submitter interface {
	SubmitPick(ctx context.Context, actor models.Actor, req pick.SubmitRequest) (*pick.Result, error)
}

// Orchestrator sleeps until the soonest live deadline, then fans expired
// drafts out to a small worker pool that auto-picks for them.
type Orchestrator struct {
	deadlines  Deadlines
	submitter  Submitter
	strat      Strategy
	clock      clockwork.Clock
	batchSize  int32
	instanceID string

	wakeCh chan struct{}

	numWorkers int
	workCh     chan uuid.UUID

	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(deadlines Deadlines, submitter Submitter, strat Strategy, clock clockwork.Clock, batchSize int32) *Orchestrator {
	numWorkers := 10
	return &Orchestrator{
		deadlines:  deadlines,
		submitter:  submitter,
		strat:      strat,
		clock:      clock,
		batchSize:  batchSize,
		instanceID: uuid.New().String()[:8],
		wakeCh:     make(chan struct{}, 1),
		numWorkers: numWorkers,
		workCh:     make(chan uuid.UUID, numWorkers*2),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Wake nudges the scheduler to re-read the soonest deadline, used after a
// write that may have armed a sooner one.
func (o *Orchestrator) Wake() {
	select {
	case o.wakeCh <- struct{}{}:
	default:
	}
}

// Run loops until ctx is cancelled, sleeping until the next deadline and
// dispatching expired drafts to the worker pool.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Info().Str("instance", o.instanceID).Int("workers", o.numWorkers).Msg("auto-pick scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.numWorkers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}
	defer func() {
		cancelWorkers()
		close(o.workCh)
		wg.Wait()
		log.Info().Str("instance", o.instanceID).Msg("all workers shut down")
	}()

	timer := o.clock.NewTimer(0)
	defer timer.Stop()

	const idlePollDuration = 5 * time.Second

	for {
		// Drain a stale wake so the fresh deadline read below covers it.
		select {
		case <-o.wakeCh:
		default:
		}

		nd, err := o.deadlines.FetchNextDeadline(ctx)
		if err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("failed to fetch next deadline")
			if !o.sleep(ctx, timer, time.Second) {
				return nil
			}
			continue
		}

		if nd == nil || nd.Deadline == nil {
			if !o.sleep(ctx, timer, idlePollDuration) {
				return nil
			}
			continue
		}

		if wait := nd.Deadline.Sub(o.clock.Now()); wait > 0 {
			if !o.sleep(ctx, timer, wait) {
				return nil
			}
		}

		due, err := o.deadlines.FetchDraftsDueForPick(ctx, o.batchSize)
		if err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("failed to fetch due drafts")
			if !o.sleep(ctx, timer, time.Second) {
				return nil
			}
			continue
		}

		for _, draftID := range due {
			o.inFlightMu.Lock()
			if o.inFlight[draftID] {
				o.inFlightMu.Unlock()
				continue
			}
			o.inFlight[draftID] = true
			o.inFlightMu.Unlock()

			select {
			case <-ctx.Done():
				o.inFlightMu.Lock()
				delete(o.inFlight, draftID)
				o.inFlightMu.Unlock()
				return nil
			case o.workCh <- draftID:
			}
		}
	}
}

// sleep waits for d, a wake, or cancellation. Returns false on cancellation.
func (o *Orchestrator) sleep(ctx context.Context, timer clockwork.Timer, d time.Duration) bool {
	timer.Reset(d)
	select {
	case <-timer.Chan():
		return true
	case <-o.wakeCh:
		return true
	case <-ctx.Done():
		return false
	}
}

func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case draftID, ok := <-o.workCh:
			if !ok {
				return
			}
			o.handleTimeout(ctx, draftID, workerID)

			o.inFlightMu.Lock()
			delete(o.inFlight, draftID)
			o.inFlightMu.Unlock()
		}
	}
}

// handleTimeout auto-picks for a draft whose clock expired. Conflicts are the
// normal case for buzzer-beater races and status changes; they are logged and
// dropped, never retried, since a fresh deadline read governs the next cycle.
func (o *Orchestrator) handleTimeout(ctx context.Context, draftID uuid.UUID, workerID int) {
	playerName, err := o.strat.SelectPlayer(ctx, draftID)
	if err != nil {
		log.Warn().Err(err).
			Str("draft_id", draftID.String()).
			Int("worker_id", workerID).
			Msg("auto-pick strategy failed")
		return
	}

	res, err := o.submitter.SubmitPick(ctx, models.SystemActor(), pick.SubmitRequest{
		DraftID:    draftID,
		PlayerName: playerName,
		AutoPick:   true,
	})
	if err != nil {
		switch errs.KindOf(err) {
		case errs.KindConflict, errs.KindValidation:
			log.Debug().Err(err).
				Str("draft_id", draftID.String()).
				Msg("auto-pick lost to a concurrent change")
		default:
			log.Error().Err(err).
				Str("draft_id", draftID.String()).
				Int("worker_id", workerID).
				Msg("auto-pick submission failed")
		}
		return
	}

	log.Info().
		Str("draft_id", draftID.String()).
		Int("overall_pick", res.Pick.OverallPick).
		Str("player", res.Pick.PlayerName).
		Bool("completed", res.DraftCompleted).
		Msg("auto-pick committed")
}
