package model

import "time"

// SessionStatusDone is the only stored session status. A session with an
// empty status and a non-nil StartAt is scheduled; there is no explicit
// "scheduled" value.
const SessionStatusDone = "done"

type Session struct {
	ID          int64       `json:"id"`
	TeacherID   int64       `json:"teacher_id"`
	LearnerID   int64       `json:"learner_id"`
	CourseCode  string      `json:"course_code"`
	Minutes     int         `json:"minutes"`
	TimeSlotID  *int64      `json:"time_slot_id,omitempty"`
	StartAt     *time.Time  `json:"start_at,omitempty"`
	EndAt       *time.Time  `json:"end_at,omitempty"`
	Status      string      `json:"status"`
	SessionType SessionType `json:"session_type"`
	MeetingLink *string     `json:"meeting_link,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (s *Session) Done() bool {
	return s.Status == SessionStatusDone
}
