package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Strategy chooses the player an auto-pick submits.
type Strategy interface {
	SelectPlayer(ctx context.Context, draftID uuid.UUID) (string, error)
}

// AvailablePlayers lists the pool players not yet picked.
type AvailablePlayers interface {
	ListAvailable(ctx context.Context, draftID uuid.UUID) ([]models.PoolPlayer, error)
}

// RandomStrategy picks uniformly from the remaining pool. The mutex guards
// rng, which workers call concurrently.
type RandomStrategy struct {
	pool AvailablePlayers
	mu   sync.Mutex
	rng  *rand.Rand
}

// NewRandomStrategy constructs a RandomStrategy with its own seed.
func NewRandomStrategy(pool AvailablePlayers) *RandomStrategy {
	return &RandomStrategy{
		pool: pool,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *RandomStrategy) SelectPlayer(ctx context.Context, draftID uuid.UUID) (string, error) {
	players, err := s.pool.ListAvailable(ctx, draftID)
	if err != nil {
		return "", fmt.Errorf("list available players: %w", err)
	}
	if len(players) == 0 {
		return "", fmt.Errorf("no available players in draft %s", draftID)
	}
	s.mu.Lock()
	i := s.rng.Intn(len(players))
	s.mu.Unlock()
	return players[i].PlayerName, nil
}
