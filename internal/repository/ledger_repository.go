package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap_api/internal/model"
)

// LedgerRepository covers both append-only ledgers. Rows are never updated
// or deleted.
type LedgerRepository struct {
	db DB
}

func (r *LedgerRepository) InsertToken(ctx context.Context, entry *model.TokenEntry) error {
	query := `
		INSERT INTO token_ledger (user_id, session_id, tokens, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		entry.UserID,
		entry.SessionID,
		entry.Tokens,
		entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert token entry: %w", err)
	}

	return nil
}

// TokenBalance sums the user's token ledger.
func (r *LedgerRepository) TokenBalance(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COALESCE(SUM(tokens), 0) FROM token_ledger WHERE user_id = $1`

	var balance int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("token balance: %w", err)
	}

	return balance, nil
}

// HasMintForSession reports whether a completion mint was already written for
// the session. This guard keeps repeated complete() calls from re-minting.
func (r *LedgerRepository) HasMintForSession(ctx context.Context, sessionID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM token_ledger
			WHERE session_id = $1 AND reason = $2
		)
	`

	var minted bool
	if err := r.db.QueryRow(ctx, query, sessionID, model.TokenReasonMinted).Scan(&minted); err != nil {
		return false, fmt.Errorf("check completion mint: %w", err)
	}

	return minted, nil
}

func (r *LedgerRepository) InsertCredit(ctx context.Context, entry *model.CreditEntry) error {
	query := `
		INSERT INTO credit_ledger (user_id, session_id, delta, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		entry.UserID,
		entry.SessionID,
		entry.Delta,
		entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert credit entry: %w", err)
	}

	return nil
}

// CreditMinutes sums the user's time-credit ledger.
func (r *LedgerRepository) CreditMinutes(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COALESCE(SUM(delta), 0) FROM credit_ledger WHERE user_id = $1`

	var minutes int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("credit minutes: %w", err)
	}

	return minutes, nil
}
