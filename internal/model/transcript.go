package model

import (
	"encoding/json"
	"time"
)

// TranscriptIngest is the audit row written for every transcript upload.
// Result holds the full extraction output (eligible and non-eligible lists).
// Rows are never mutated after creation; ContentHash is advisory only.
type TranscriptIngest struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash"`
	Result      json.RawMessage `json:"result"`
	AddedCount  int             `json:"added_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UserCourse is a course the user has confirmed from a transcript review.
// (UserID, CourseCode) is unique; the grade is only overwritten by an upsert
// when the new grade outranks the stored one.
type UserCourse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CourseCode string    `json:"course_code"`
	Grade      string    `json:"grade"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
