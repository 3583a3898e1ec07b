// Package pool serves the fixed player pool attached to each draft.
package pool

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// PGRepository implements pool storage on Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres pool repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListPlayers returns every player in the draft's pool, name order.
func (r *PGRepository) ListPlayers(ctx context.Context, draftID uuid.UUID) ([]models.PoolPlayer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT draft_id, player_name, team, role
		FROM draft_pool
		WHERE draft_id = $1
		ORDER BY player_name`, draftID)
	if err != nil {
		return nil, errs.Transient(err, "failed to query player pool")
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// ListAvailable returns pool players not yet taken by a committed pick.
func (r *PGRepository) ListAvailable(ctx context.Context, draftID uuid.UUID) ([]models.PoolPlayer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pp.draft_id, pp.player_name, pp.team, pp.role
		FROM draft_pool pp
		WHERE pp.draft_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM draft_picks pk
			WHERE pk.draft_id = pp.draft_id AND pk.player_name = pp.player_name
		  )
		ORDER BY pp.player_name`, draftID)
	if err != nil {
		return nil, errs.Transient(err, "failed to query available players")
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// Exists reports whether playerName belongs to the draft's pool.
func (r *PGRepository) Exists(ctx context.Context, draftID uuid.UUID, playerName string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM draft_pool WHERE draft_id = $1 AND player_name = $2
		)`, draftID, playerName).Scan(&exists)
	if err != nil {
		return false, errs.Transient(err, "failed to check player pool")
	}
	return exists, nil
}

func scanPlayers(rows pgx.Rows) ([]models.PoolPlayer, error) {
	var players []models.PoolPlayer
	for rows.Next() {
		var p models.PoolPlayer
		if err := rows.Scan(&p.DraftID, &p.PlayerName, &p.Team, &p.Role); err != nil {
			return nil, errs.Transient(err, "failed to scan pool player")
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Transient(err, "failed to read pool players")
	}
	return players, nil
}
