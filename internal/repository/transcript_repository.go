package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type TranscriptRepository struct {
	db DB
}

func (r *TranscriptRepository) CreateIngest(ctx context.Context, ingest *model.TranscriptIngest) error {
	query := `
		INSERT INTO transcript_ingests (user_id, filename, content_hash, result, added_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		ingest.UserID,
		ingest.Filename,
		ingest.ContentHash,
		ingest.Result,
		ingest.AddedCount,
	).Scan(&ingest.ID, &ingest.CreatedAt)

	if err != nil {
		return fmt.Errorf("create transcript ingest: %w", err)
	}

	return nil
}

type CourseRepository struct {
	db DB
}

func (r *CourseRepository) GetByUserAndCode(ctx context.Context, userID int64, courseCode string) (*model.UserCourse, error) {
	query := `
		SELECT id, user_id, course_code, grade, created_at, updated_at
		FROM user_courses
		WHERE user_id = $1 AND course_code = $2
	`

	var course model.UserCourse
	err := r.db.QueryRow(ctx, query, userID, courseCode).Scan(
		&course.ID,
		&course.UserID,
		&course.CourseCode,
		&course.Grade,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user course: %w", err)
	}

	return &course, nil
}

func (r *CourseRepository) Upsert(ctx context.Context, course *model.UserCourse) error {
	query := `
		INSERT INTO user_courses (user_id, course_code, grade)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_code)
		DO UPDATE SET grade = EXCLUDED.grade, updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, course.UserID, course.CourseCode, course.Grade).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user course: %w", err)
	}

	return nil
}

func (r *CourseRepository) ListByUser(ctx context.Context, userID int64) ([]*model.UserCourse, error) {
	query := `
		SELECT id, user_id, course_code, grade, created_at, updated_at
		FROM user_courses
		WHERE user_id = $1
		ORDER BY course_code
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.UserCourse
	for rows.Next() {
		var course model.UserCourse
		err := rows.Scan(
			&course.ID,
			&course.UserID,
			&course.CourseCode,
			&course.Grade,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user course: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user courses: %w", err)
	}

	return courses, nil
}
