package presence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

type memRepo struct {
	records map[uuid.UUID]models.PresenceRecord
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uuid.UUID]models.PresenceRecord)}
}

func (m *memRepo) UpsertHeartbeat(_ context.Context, req HeartbeatRequest, seenAt time.Time) error {
	rec, ok := m.records[req.UserID]
	if !ok {
		rec = models.PresenceRecord{DraftID: req.DraftID, UserID: req.UserID}
	}
	rec.LastSeenAt = seenAt
	if req.IsReady != nil {
		rec.IsReady = *req.IsReady
	}
	m.records[req.UserID] = rec
	return nil
}

func (m *memRepo) ListByDraft(_ context.Context, _ uuid.UUID) ([]models.PresenceRecord, error) {
	out := make([]models.PresenceRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func boolPtr(b bool) *bool { return &b }

func TestHeartbeatKeepsStickyReadyFlag(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	repo := newMemRepo()
	app := NewApp(repo, clock)

	draftID := uuid.New()
	userID := uuid.New()
	participants := []models.Participant{{DraftID: draftID, UserID: userID, DraftPosition: 1}}

	require.NoError(t, app.Heartbeat(ctx, HeartbeatRequest{DraftID: draftID, UserID: userID, IsReady: boolPtr(true)}))

	// Later heartbeat without isReady must not clear readiness.
	clock.Advance(10 * time.Second)
	require.NoError(t, app.Heartbeat(ctx, HeartbeatRequest{DraftID: draftID, UserID: userID}))

	snap, err := app.SnapshotForDraft(ctx, draftID, participants)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PresentCount)
	assert.Equal(t, 1, snap.ReadyCount)
	assert.True(t, snap.Participants[0].IsReady)
}

func TestSnapshotLivenessWindow(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	repo := newMemRepo()
	app := NewApp(repo, clock)

	draftID := uuid.New()
	fresh := uuid.New()
	stale := uuid.New()
	missing := uuid.New()
	participants := []models.Participant{
		{DraftID: draftID, UserID: stale, DraftPosition: 1},
		{DraftID: draftID, UserID: fresh, DraftPosition: 2},
		{DraftID: draftID, UserID: missing, DraftPosition: 3},
	}

	require.NoError(t, app.Heartbeat(ctx, HeartbeatRequest{DraftID: draftID, UserID: stale, IsReady: boolPtr(true)}))
	clock.Advance(LivenessWindow + time.Second)
	require.NoError(t, app.Heartbeat(ctx, HeartbeatRequest{DraftID: draftID, UserID: fresh}))

	snap, err := app.SnapshotForDraft(ctx, draftID, participants)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PresentCount)
	// stale is ready but offline, so it does not count toward readiness.
	assert.Equal(t, 0, snap.ReadyCount)

	byUser := make(map[uuid.UUID]ParticipantPresence)
	for _, p := range snap.Participants {
		byUser[p.UserID] = p
	}
	assert.False(t, byUser[stale].IsOnline)
	assert.True(t, byUser[stale].IsReady)
	assert.True(t, byUser[fresh].IsOnline)
	assert.False(t, byUser[missing].IsOnline)
	assert.Nil(t, byUser[missing].LastSeenAt)
}

func TestDeriveExactWindowBoundaryIsOnline(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	draftID := uuid.New()
	userID := uuid.New()

	snap := Derive(
		[]models.Participant{{DraftID: draftID, UserID: userID, DraftPosition: 1}},
		[]models.PresenceRecord{{DraftID: draftID, UserID: userID, LastSeenAt: now.Add(-LivenessWindow)}},
		now,
	)
	assert.Equal(t, 1, snap.PresentCount)
}
