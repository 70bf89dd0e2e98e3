package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type SessionRepository struct {
	db DB
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (teacher_id, learner_id, course_code, minutes, time_slot_id, start_at, end_at, status, session_type, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		session.TeacherID,
		session.LearnerID,
		session.CourseCode,
		session.Minutes,
		session.TimeSlotID,
		session.StartAt,
		session.EndAt,
		session.Status,
		session.SessionType,
		session.MeetingLink,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `
		SELECT id, teacher_id, learner_id, course_code, minutes, time_slot_id, start_at, end_at, status, session_type, meeting_link, created_at
		FROM sessions
		WHERE id = $1
	`

	var session model.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.TeacherID,
		&session.LearnerID,
		&session.CourseCode,
		&session.Minutes,
		&session.TimeSlotID,
		&session.StartAt,
		&session.EndAt,
		&session.Status,
		&session.SessionType,
		&session.MeetingLink,
		&session.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return &session, nil
}

func (r *SessionRepository) SetSchedule(ctx context.Context, id int64, startAt, endAt time.Time) error {
	query := `
		UPDATE sessions
		SET start_at = $1, end_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, startAt, endAt, id)
	if err != nil {
		return fmt.Errorf("schedule session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

func (r *SessionRepository) SetMeetingLink(ctx context.Context, id int64, link string) error {
	result, err := r.db.Exec(ctx, `UPDATE sessions SET meeting_link = $1 WHERE id = $2`, link, id)
	if err != nil {
		return fmt.Errorf("set meeting link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

func (r *SessionRepository) MarkDone(ctx context.Context, id int64, endAt time.Time) error {
	query := `
		UPDATE sessions
		SET status = 'done', end_at = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, endAt, id)
	if err != nil {
		return fmt.Errorf("mark session done: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}
