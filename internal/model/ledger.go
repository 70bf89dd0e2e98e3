package model

import "time"

type TokenReason string

const (
	TokenReasonInitialGrant TokenReason = "initial_grant"
	TokenReasonSpent        TokenReason = "token_spent_on_session"
	TokenReasonMinted       TokenReason = "token_minted_from_completion"
)

// TokenEntry is an append-only token ledger row. A user's balance is the sum
// of Tokens over their rows.
type TokenEntry struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	SessionID *int64      `json:"session_id,omitempty"`
	Tokens    int         `json:"tokens"`
	Reason    TokenReason `json:"reason"`
	CreatedAt time.Time   `json:"created_at"`
}

type CreditReason string

const (
	CreditReasonTaught CreditReason = "session_taught"
	CreditReasonTaken  CreditReason = "session_taken"
)

// CreditEntry records teaching (+) or learning (-) minutes for a session.
// Written once at acceptance, never revisited.
type CreditEntry struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	SessionID int64        `json:"session_id"`
	Delta     int          `json:"delta"`
	Reason    CreditReason `json:"reason"`
	CreatedAt time.Time    `json:"created_at"`
}
