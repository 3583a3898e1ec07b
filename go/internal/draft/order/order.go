// Package order maps a linear pick counter onto participants under the
// third-round-reversal snake variant used by the league: round 1 runs
// forward, rounds 2 and 3 both run backward, and from round 4 on the order
// alternates by parity like a normal snake.
package order

import (
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
)

// Slot locates a single overall pick inside the draft grid.
type Slot struct {
	RoundNumber      int `json:"round_number"`
	RoundPick        int `json:"round_pick"`
	ParticipantIndex int `json:"participant_index"`
}

// Resolve returns the slot for overallPick in a draft with participantCount
// members. participantCount must be at least 2 and overallPick at least 1.
func Resolve(participantCount, overallPick int) (Slot, error) {
	if participantCount < 2 {
		return Slot{}, errs.Validation(errs.ReasonInvalidInput, "participant count %d is below the minimum of 2", participantCount)
	}
	if overallPick < 1 {
		return Slot{}, errs.Validation(errs.ReasonInvalidInput, "overall pick %d must be at least 1", overallPick)
	}

	round := (overallPick-1)/participantCount + 1
	offset := (overallPick - 1) % participantCount

	idx := offset
	if reversedRound(round) {
		idx = participantCount - 1 - offset
	}

	return Slot{
		RoundNumber:      round,
		RoundPick:        offset + 1,
		ParticipantIndex: idx,
	}, nil
}

// reversedRound reports whether the given round runs against draft position
// order. Rounds 2 and 3 are both reversed; from round 4 onward odd rounds
// are reversed, which continues the snake pattern round 3 set up.
func reversedRound(round int) bool {
	switch {
	case round == 1:
		return false
	case round == 2 || round == 3:
		return true
	default:
		return round%2 == 1
	}
}
