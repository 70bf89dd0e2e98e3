package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type UserRepository struct {
	db DB
}

// Create inserts a new user. Callers racing on the same email should check
// IsUniqueViolation and fall back to GetByEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, display_name, university, timezone, avatar_url, onboarded)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		user.Email,
		user.DisplayName,
		user.University,
		user.Timezone,
		user.AvatarURL,
		user.Onboarded,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByEmail looks a user up case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, display_name, university, timezone, avatar_url, onboarded, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.University,
		&user.Timezone,
		&user.AvatarURL,
		&user.Onboarded,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, email, display_name, university, timezone, avatar_url, onboarded, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.University,
		&user.Timezone,
		&user.AvatarURL,
		&user.Onboarded,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}
