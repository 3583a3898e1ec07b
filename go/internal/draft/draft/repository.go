package draft

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// PGRepository implements draft storage on Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres draft repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const draftColumns = `id, status, round_count, pick_seconds, scheduled_at,
	started_at, next_deadline, commissioner_user_id, created_at, updated_at`

func (r *PGRepository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id)
	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("draft %s not found", id)
		}
		return nil, errs.Transient(err, "failed to get draft")
	}
	return draft, nil
}

func (r *PGRepository) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.draft_id, p.user_id, u.username, p.draft_position
		FROM draft_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.draft_id = $1
		ORDER BY p.draft_position`, draftID)
	if err != nil {
		return nil, errs.Transient(err, "failed to query participants")
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.DraftID, &p.UserID, &p.Username, &p.DraftPosition); err != nil {
			return nil, errs.Transient(err, "failed to scan participant")
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Transient(err, "failed to read participants")
	}
	return participants, nil
}

// UpdateStatusGuarded writes the new status only if the draft still carries
// the observed one. Zero rows means another commissioner got there first;
// the caller refetches and re-validates.
func (r *PGRepository) UpdateStatusGuarded(ctx context.Context, req UpdateStatusGuardedRequest) (*models.Draft, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE drafts
		SET status        = $3,
		    started_at    = COALESCE(started_at, $4),
		    next_deadline = $5,
		    updated_at    = now()
		WHERE id = $1 AND status = $2
		RETURNING `+draftColumns,
		req.DraftID, req.FromStatus, req.ToStatus, req.StartedAt, req.NextDeadline)

	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.Conflict(errs.ReasonStatusChanged,
				"draft status changed concurrently; refetch and retry")
		}
		return nil, errs.Transient(err, "failed to update draft status")
	}
	return draft, nil
}

// FetchNextDeadline returns the soonest pending pick deadline across live
// drafts, or nil when no draft has one.
func (r *PGRepository) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, next_deadline
		FROM drafts
		WHERE status = 'live' AND next_deadline IS NOT NULL
		ORDER BY next_deadline
		LIMIT 1`)

	var nd NextDeadline
	if err := row.Scan(&nd.DraftID, &nd.Deadline); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Transient(err, "failed to fetch next deadline")
	}
	return &nd, nil
}

// FetchDraftsDueForPick returns live drafts whose deadline has passed.
func (r *PGRepository) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM drafts
		WHERE status = 'live' AND next_deadline IS NOT NULL AND next_deadline <= now()
		ORDER BY next_deadline
		LIMIT $1`, limit)
	if err != nil {
		return nil, errs.Transient(err, "failed to fetch due drafts")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Transient(err, "failed to scan due draft id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Transient(err, "failed to read due drafts")
	}
	return ids, nil
}

func scanDraft(row pgx.Row) (*models.Draft, error) {
	var d models.Draft
	if err := row.Scan(
		&d.ID, &d.Status, &d.RoundCount, &d.PickSeconds, &d.ScheduledAt,
		&d.StartedAt, &d.NextDeadline, &d.CommissionerUserID, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
