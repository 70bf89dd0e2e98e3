package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type RequestRepository struct {
	db DB
}

const requestColumns = `id, from_user_id, to_user_id, course_code, minutes, note, time_slot_id, status, session_id, created_at, updated_at`

func scanRequest(row pgx.Row) (*model.Request, error) {
	var req model.Request
	err := row.Scan(
		&req.ID,
		&req.FromUserID,
		&req.ToUserID,
		&req.CourseCode,
		&req.Minutes,
		&req.Note,
		&req.TimeSlotID,
		&req.Status,
		&req.SessionID,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Create(ctx context.Context, req *model.Request) error {
	query := `
		INSERT INTO requests (from_user_id, to_user_id, course_code, minutes, note, time_slot_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		req.FromUserID,
		req.ToUserID,
		req.CourseCode,
		req.Minutes,
		req.Note,
		req.TimeSlotID,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get request by id: %w", err)
	}

	return req, nil
}

// HasActiveBetween reports whether an active request exists for the ordered
// (from, to) pair: PENDING, or ACCEPTED whose session is not yet done.
func (r *RequestRepository) HasActiveBetween(ctx context.Context, fromUserID, toUserID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM requests r
			LEFT JOIN sessions s ON s.id = r.session_id
			WHERE r.from_user_id = $1 AND r.to_user_id = $2
			  AND (r.status = 'PENDING' OR (r.status = 'ACCEPTED' AND s.status <> 'done'))
		)
	`

	var active bool
	if err := r.db.QueryRow(ctx, query, fromUserID, toUserID).Scan(&active); err != nil {
		return false, fmt.Errorf("check active request: %w", err)
	}

	return active, nil
}

func (r *RequestRepository) MarkAccepted(ctx context.Context, id, sessionID int64) error {
	query := `
		UPDATE requests
		SET status = 'ACCEPTED', session_id = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, sessionID, id)
	if err != nil {
		return fmt.Errorf("mark request accepted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("request not found")
	}

	return nil
}

func (r *RequestRepository) MarkDeclined(ctx context.Context, id int64) error {
	query := `
		UPDATE requests
		SET status = 'DECLINED', updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark request declined: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("request not found")
	}

	return nil
}

// ListInbox returns requests addressed to the user, excluding those whose
// linked session is already done.
func (r *RequestRepository) ListInbox(ctx context.Context, toUserID int64) ([]*model.Request, error) {
	return r.list(ctx, `to_user_id`, toUserID)
}

// ListSent returns requests the user created, with the same done-session
// exclusion as the inbox.
func (r *RequestRepository) ListSent(ctx context.Context, fromUserID int64) ([]*model.Request, error) {
	return r.list(ctx, `from_user_id`, fromUserID)
}

func (r *RequestRepository) list(ctx context.Context, column string, userID int64) ([]*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		WHERE r.` + column + ` = $1
		  AND NOT EXISTS (
			SELECT 1 FROM sessions s
			WHERE s.id = r.session_id AND s.status = 'done'
		  )
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}
