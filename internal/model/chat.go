package model

import "time"

// ChatThread holds the canonical pairwise identity for two users: the smaller
// id is always stored first so (UserAID, UserBID) is unique regardless of who
// initiated contact.
type ChatThread struct {
	ID        int64     `json:"id"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ThreadKey returns the canonical ordering for a pair of user ids.
func ThreadKey(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

type Message struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
