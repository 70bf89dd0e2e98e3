package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type ChatRepository struct {
	db DB
}

// UpsertThread creates the canonical thread for a user pair if it does not
// exist and returns it either way. ON CONFLICT makes the upsert safe under
// concurrent acceptance of requests between the same pair.
func (r *ChatRepository) UpsertThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error) {
	a, b := model.ThreadKey(userAID, userBID)

	query := `
		INSERT INTO chat_threads (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		RETURNING id, user_a_id, user_b_id, created_at
	`

	var thread model.ChatThread
	err := r.db.QueryRow(ctx, query, a, b).Scan(
		&thread.ID,
		&thread.UserAID,
		&thread.UserBID,
		&thread.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert chat thread: %w", err)
	}

	return &thread, nil
}

func (r *ChatRepository) GetThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error) {
	a, b := model.ThreadKey(userAID, userBID)

	query := `
		SELECT id, user_a_id, user_b_id, created_at
		FROM chat_threads
		WHERE user_a_id = $1 AND user_b_id = $2
	`

	var thread model.ChatThread
	err := r.db.QueryRow(ctx, query, a, b).Scan(
		&thread.ID,
		&thread.UserAID,
		&thread.UserBID,
		&thread.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat thread: %w", err)
	}

	return &thread, nil
}

func (r *ChatRepository) InsertMessage(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (thread_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, msg.ThreadID, msg.SenderID, msg.Text).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// ListMessages returns the thread's messages in ascending created_at order,
// optionally only those after the cursor.
func (r *ChatRepository) ListMessages(ctx context.Context, threadID int64, after time.Time) ([]*model.Message, error) {
	query := `
		SELECT id, thread_id, sender_id, text, created_at
		FROM messages
		WHERE thread_id = $1 AND created_at > $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, threadID, after)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var msg model.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ThreadID,
			&msg.SenderID,
			&msg.Text,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
