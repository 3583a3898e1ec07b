package pick

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// Postgres error codes that signal a lost pick race.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// PGRepository implements pick storage on Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres pick repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertPick commits a pick inside a serializable transaction. The count of
// existing picks is re-read inside the transaction and must equal
// req.OverallPick-1; together with the unique indexes on (draft_id,
// overall_pick) and (draft_id, player_name) this makes concurrent
// submissions for the same slot or player lose cleanly with a Conflict.
func (r *PGRepository) InsertPick(ctx context.Context, req InsertRequest) (*models.Pick, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, errs.Transient(err, "failed to begin pick transaction")
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM draft_picks WHERE draft_id = $1`, req.DraftID,
	).Scan(&count); err != nil {
		return nil, errs.Transient(err, "failed to count picks")
	}
	if count != req.OverallPick-1 {
		return nil, errs.Conflict(errs.ReasonTurnTaken,
			"expected pick %d but draft has %d picks", req.OverallPick, count)
	}

	var p models.Pick
	err = tx.QueryRow(ctx, `
		INSERT INTO draft_picks (id, draft_id, overall_pick, round_number, round_pick,
			participant_user_id, player_name, picked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, draft_id, overall_pick, round_number, round_pick,
			participant_user_id, player_name, picked_at`,
		req.ID, req.DraftID, req.OverallPick, req.RoundNumber, req.RoundPick,
		req.ParticipantUserID, req.PlayerName, req.PickedAt,
	).Scan(&p.ID, &p.DraftID, &p.OverallPick, &p.RoundNumber, &p.RoundPick,
		&p.ParticipantUserID, &p.PlayerName, &p.PickedAt)
	if err != nil {
		return nil, mapInsertError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapInsertError(err)
	}
	return &p, nil
}

// mapInsertError turns the constraint and serialization failures a lost race
// produces into Conflicts the app layer can surface. Anything else is a
// storage failure.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "player") {
				return errs.Conflict(errs.ReasonPlayerUnavailable, "player was just taken by another pick")
			}
			return errs.Conflict(errs.ReasonTurnTaken, "pick slot was just filled by another submission")
		case pgSerializationFailure:
			return errs.Conflict(errs.ReasonTurnTaken, "pick lost a serialization race; refetch and retry")
		}
	}
	return errs.Transient(err, "failed to insert pick")
}

// ListPicks returns a draft's picks ordered by overall pick.
func (r *PGRepository) ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, draft_id, overall_pick, round_number, round_pick,
			participant_user_id, player_name, picked_at
		FROM draft_picks
		WHERE draft_id = $1
		ORDER BY overall_pick`, draftID)
	if err != nil {
		return nil, errs.Transient(err, "failed to query picks")
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		if err := rows.Scan(&p.ID, &p.DraftID, &p.OverallPick, &p.RoundNumber, &p.RoundPick,
			&p.ParticipantUserID, &p.PlayerName, &p.PickedAt); err != nil {
			return nil, errs.Transient(err, "failed to scan pick")
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Transient(err, "failed to read picks")
	}
	return picks, nil
}

// SetNextDeadline writes the pick clock for a draft. The guard on status
// keeps a post-pick deadline from resurrecting on a draft that was paused or
// completed in the meantime. deadline may be nil to clear the clock.
func (r *PGRepository) SetNextDeadline(ctx context.Context, draftID uuid.UUID, deadline *time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE drafts
		SET next_deadline = $2, updated_at = now()
		WHERE id = $1 AND status = 'live'`, draftID, deadline)
	if err != nil {
		return errs.Transient(err, "failed to set next deadline")
	}
	return nil
}
