// Package deadline computes the expiry timestamp of the current pick from
// the timer configuration and the last observed event. It is pure: staleness
// is evaluated by the caller against its own clock.
package deadline

import (
	"time"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Compute returns when the pick currently on the clock expires, or nil when
// no deadline applies. The anchor is the last committed pick, or the draft
// start when nothing has been picked yet. A draft that is not live, has no
// timer configured, or has no anchor yet carries no deadline.
func Compute(pickSeconds int, status models.DraftStatus, startedAt *time.Time, picks []models.Pick) *time.Time {
	if status != models.DraftStatusLive || pickSeconds <= 0 {
		return nil
	}

	var anchor *time.Time
	if len(picks) > 0 {
		anchor = &picks[len(picks)-1].PickedAt
	} else {
		anchor = startedAt
	}
	if anchor == nil {
		return nil
	}

	d := anchor.Add(time.Duration(pickSeconds) * time.Second)
	return &d
}
