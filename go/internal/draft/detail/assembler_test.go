package detail

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

type fakeSources struct {
	draft        *models.Draft
	participants []models.Participant
	picks        []models.Pick
	available    []models.PoolPlayer
	snap         presence.Snapshot

	buildCount int
}

func (f *fakeSources) GetDraft(_ context.Context, _ uuid.UUID) (*models.Draft, error) {
	f.buildCount++
	d := *f.draft
	return &d, nil
}

func (f *fakeSources) ListParticipants(_ context.Context, _ uuid.UUID) ([]models.Participant, error) {
	return f.participants, nil
}

func (f *fakeSources) ListPicks(_ context.Context, _ uuid.UUID) ([]models.Pick, error) {
	return f.picks, nil
}

func (f *fakeSources) ListAvailable(_ context.Context, _ uuid.UUID) ([]models.PoolPlayer, error) {
	return f.available, nil
}

func (f *fakeSources) SnapshotForDraft(_ context.Context, _ uuid.UUID, _ []models.Participant) (presence.Snapshot, error) {
	return f.snap, nil
}

func newSources(status models.DraftStatus, n, rounds int) *fakeSources {
	f := &fakeSources{
		draft: &models.Draft{
			ID:                 uuid.New(),
			Status:             status,
			RoundCount:         rounds,
			PickSeconds:        60,
			CommissionerUserID: uuid.New(),
		},
	}
	for i := 0; i < n; i++ {
		f.participants = append(f.participants, models.Participant{
			DraftID:       f.draft.ID,
			UserID:        uuid.New(),
			Username:      fmt.Sprintf("manager%d", i+1),
			DraftPosition: i + 1,
		})
	}
	return f
}

func newAssembler(f *fakeSources, clock clockwork.Clock) *Assembler {
	return NewAssembler(f, f, f, f, clock)
}

func TestAssembleNextPickFollowsBoard(t *testing.T) {
	f := newSources(models.DraftStatusLive, 4, 5)
	a := newAssembler(f, clockwork.NewFakeClock()).WithTTL(0)
	ctx := context.Background()

	view, err := a.Assemble(ctx, f.draft.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.NextPick)
	assert.Equal(t, 1, view.NextPick.OverallPick)
	assert.Equal(t, f.participants[0].UserID, view.NextPick.ParticipantUserID)

	// Four picks in: round 2 runs backward, so position 4 is on the clock.
	for i := 0; i < 4; i++ {
		f.picks = append(f.picks, models.Pick{OverallPick: i + 1})
	}
	view, err = a.Assemble(ctx, f.draft.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.NextPick)
	assert.Equal(t, 5, view.NextPick.OverallPick)
	assert.Equal(t, 2, view.NextPick.RoundNumber)
	assert.Equal(t, f.participants[3].UserID, view.NextPick.ParticipantUserID)
}

func TestAssembleNextPickNilWhenComplete(t *testing.T) {
	f := newSources(models.DraftStatusCompleted, 2, 1)
	f.picks = []models.Pick{{OverallPick: 1}, {OverallPick: 2}}
	a := newAssembler(f, clockwork.NewFakeClock()).WithTTL(0)

	view, err := a.Assemble(context.Background(), f.draft.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, view.NextPick)
	assert.Nil(t, view.CurrentPickDeadlineAt)
}

func TestAssembleDeadlinePrefersPersistedClock(t *testing.T) {
	f := newSources(models.DraftStatusLive, 4, 5)
	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	rearmed := started.Add(10 * time.Minute)
	f.draft.StartedAt = &started
	f.draft.NextDeadline = &rearmed
	a := newAssembler(f, clockwork.NewFakeClock()).WithTTL(0)

	view, err := a.Assemble(context.Background(), f.draft.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.CurrentPickDeadlineAt)
	assert.Equal(t, rearmed, *view.CurrentPickDeadlineAt)
}

func TestAssembleDeadlineDerivedWhenUnpersisted(t *testing.T) {
	f := newSources(models.DraftStatusLive, 4, 5)
	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	f.draft.StartedAt = &started
	a := newAssembler(f, clockwork.NewFakeClock()).WithTTL(0)

	view, err := a.Assemble(context.Background(), f.draft.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.CurrentPickDeadlineAt)
	assert.Equal(t, started.Add(60*time.Second), *view.CurrentPickDeadlineAt)
}

func TestAssembleIsCommissionerPerViewer(t *testing.T) {
	f := newSources(models.DraftStatusScheduled, 4, 5)
	a := newAssembler(f, clockwork.NewFakeClock())
	ctx := context.Background()

	commish := &models.User{ID: f.draft.CommissionerUserID}
	view, err := a.Assemble(ctx, f.draft.ID, commish)
	require.NoError(t, err)
	assert.True(t, view.IsCommissioner)

	// The cached shared view must not leak the previous viewer's bit.
	stranger := &models.User{ID: uuid.New()}
	view, err = a.Assemble(ctx, f.draft.ID, stranger)
	require.NoError(t, err)
	assert.False(t, view.IsCommissioner)

	admin := &models.User{ID: uuid.New(), IsAdmin: true}
	view, err = a.Assemble(ctx, f.draft.ID, admin)
	require.NoError(t, err)
	assert.True(t, view.IsCommissioner)
}

func TestAssembleCachesWithinTTL(t *testing.T) {
	f := newSources(models.DraftStatusLive, 4, 5)
	clock := clockwork.NewFakeClock()
	a := newAssembler(f, clock)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := a.Assemble(ctx, f.draft.ID, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.buildCount)

	clock.Advance(DefaultCacheTTL + time.Millisecond)
	_, err := a.Assemble(ctx, f.draft.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.buildCount)

	a.Invalidate(f.draft.ID)
	_, err = a.Assemble(ctx, f.draft.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, f.buildCount)
}
