package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusDeclined RequestStatus = "DECLINED"
)

// Request is a booking proposal from a learner to a teacher. An accepted
// request carries a back-reference to the session it spawned.
type Request struct {
	ID         int64         `json:"id"`
	FromUserID int64         `json:"from_user_id"`
	ToUserID   int64         `json:"to_user_id"`
	CourseCode string        `json:"course_code"`
	Minutes    int           `json:"minutes"`
	Note       string        `json:"note,omitempty"`
	TimeSlotID *int64        `json:"time_slot_id,omitempty"`
	Status     RequestStatus `json:"status"`
	SessionID  *int64        `json:"session_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Populated on reads that join related rows, not stored on the request.
	Session  *Session  `json:"session,omitempty"`
	TimeSlot *TimeSlot `json:"time_slot,omitempty"`
}

func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}
