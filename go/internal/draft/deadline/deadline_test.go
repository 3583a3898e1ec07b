package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

func TestComputeReturnsNilOutsideLive(t *testing.T) {
	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		pickSeconds int
		status      models.DraftStatus
		startedAt   *time.Time
	}{
		{"scheduled", 60, models.DraftStatusScheduled, nil},
		{"paused", 60, models.DraftStatusPaused, &started},
		{"completed", 60, models.DraftStatusCompleted, &started},
		{"no timer", 0, models.DraftStatusLive, &started},
		{"negative timer", -5, models.DraftStatusLive, &started},
		{"live but never started", 60, models.DraftStatusLive, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Compute(tc.pickSeconds, tc.status, tc.startedAt, nil))
		})
	}
}

func TestComputeAnchorsOnDraftStart(t *testing.T) {
	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	got := Compute(90, models.DraftStatusLive, &started, nil)
	require.NotNil(t, got)
	assert.Equal(t, started.Add(90*time.Second), *got)
}

func TestComputeAnchorsOnLastPick(t *testing.T) {
	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	picks := []models.Pick{
		{OverallPick: 1, PickedAt: started.Add(40 * time.Second)},
		{OverallPick: 2, PickedAt: started.Add(75 * time.Second)},
	}

	got := Compute(60, models.DraftStatusLive, &started, picks)
	require.NotNil(t, got)
	assert.Equal(t, picks[1].PickedAt.Add(60*time.Second), *got)
}
