package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/draft"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/pick"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

type fakeDeadlines struct {
	mu   sync.Mutex
	next *draft.NextDeadline
	due  []uuid.UUID
}

func (f *fakeDeadlines) FetchNextDeadline(_ context.Context) (*draft.NextDeadline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next, nil
}

func (f *fakeDeadlines) FetchDraftsDueForPick(_ context.Context, _ int32) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	due := f.due
	f.due = nil
	f.next = nil
	return due, nil
}

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  []pick.SubmitRequest
	actors []models.Actor
	err    error
	done   chan struct{}
}

func (f *fakeSubmitter) SubmitPick(_ context.Context, actor models.Actor, req pick.SubmitRequest) (*pick.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.actors = append(f.actors, actor)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return &pick.Result{Pick: &models.Pick{DraftID: req.DraftID, OverallPick: 1, PlayerName: req.PlayerName}}, nil
}

type fixedStrategy struct{ player string }

func (s fixedStrategy) SelectPlayer(_ context.Context, _ uuid.UUID) (string, error) {
	return s.player, nil
}

func TestRunAutoPicksExpiredDraft(t *testing.T) {
	draftID := uuid.New()
	past := time.Now().Add(-time.Second)
	deadlines := &fakeDeadlines{
		next: &draft.NextDeadline{DraftID: draftID, Deadline: &past},
		due:  []uuid.UUID{draftID},
	}
	done := make(chan struct{})
	submitter := &fakeSubmitter{done: done}

	o := NewOrchestrator(deadlines, submitter, fixedStrategy{player: "Player 01"}, clockwork.NewRealClock(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- o.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("auto-pick never submitted")
	}
	cancel()
	require.NoError(t, <-runDone)

	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	require.NotEmpty(t, submitter.calls)
	assert.Equal(t, draftID, submitter.calls[0].DraftID)
	assert.Equal(t, "Player 01", submitter.calls[0].PlayerName)
	assert.True(t, submitter.calls[0].AutoPick)
	assert.True(t, submitter.actors[0].System, "auto-picks run under the system actor")
}

func TestHandleTimeoutDropsConflicts(t *testing.T) {
	draftID := uuid.New()
	submitter := &fakeSubmitter{err: errs.Conflict(errs.ReasonTurnTaken, "beaten at the buzzer")}
	o := NewOrchestrator(&fakeDeadlines{}, submitter, fixedStrategy{player: "Player 01"}, clockwork.NewRealClock(), 10)

	// Must not panic or retry; the conflict is an expected race outcome.
	o.handleTimeout(context.Background(), draftID, 0)

	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	assert.Len(t, submitter.calls, 1)
}

type fakeAvailable struct{ players []models.PoolPlayer }

func (f fakeAvailable) ListAvailable(_ context.Context, _ uuid.UUID) ([]models.PoolPlayer, error) {
	return f.players, nil
}

func TestRandomStrategySelectsFromPool(t *testing.T) {
	pool := fakeAvailable{players: []models.PoolPlayer{
		{PlayerName: "Faker"}, {PlayerName: "Chovy"}, {PlayerName: "Caps"},
	}}
	strat := NewRandomStrategy(pool)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name, err := strat.SelectPlayer(context.Background(), uuid.New())
		require.NoError(t, err)
		seen[name] = true
	}
	for _, p := range pool.players {
		assert.True(t, seen[p.PlayerName], "expected %s to be selected at least once", p.PlayerName)
	}
}

func TestRandomStrategyEmptyPool(t *testing.T) {
	strat := NewRandomStrategy(fakeAvailable{})
	_, err := strat.SelectPlayer(context.Background(), uuid.New())
	require.Error(t, err)
}
