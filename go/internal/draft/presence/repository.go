package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// PGRepository stores presence rows in Postgres. Each heartbeat is a single
// idempotent upsert keyed by (draft_id, user_id); readers tolerate staleness
// up to the heartbeat interval, so no cross-row locking is needed.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres presence repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) UpsertHeartbeat(ctx context.Context, req HeartbeatRequest, seenAt time.Time) error {
	// COALESCE keeps the sticky ready flag when the heartbeat omits it.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO draft_presence (draft_id, user_id, is_ready, last_seen_at)
		VALUES ($1, $2, COALESCE($3, FALSE), $4)
		ON CONFLICT (draft_id, user_id)
		DO UPDATE SET last_seen_at = EXCLUDED.last_seen_at,
		              is_ready     = COALESCE($3, draft_presence.is_ready)`,
		req.DraftID, req.UserID, req.IsReady, seenAt)
	if err != nil {
		return fmt.Errorf("failed to upsert heartbeat: %w", err)
	}
	return nil
}

func (r *PGRepository) ListByDraft(ctx context.Context, draftID uuid.UUID) ([]models.PresenceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT draft_id, user_id, is_ready, last_seen_at
		FROM draft_presence
		WHERE draft_id = $1`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence records: %w", err)
	}
	defer rows.Close()

	var records []models.PresenceRecord
	for rows.Next() {
		var rec models.PresenceRecord
		if err := rows.Scan(&rec.DraftID, &rec.UserID, &rec.IsReady, &rec.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan presence record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read presence records: %w", err)
	}
	return records, nil
}
