package model

import "time"

type SlotType string

const (
	SlotTypeCourse SlotType = "course"
	SlotTypeSkill  SlotType = "skill"
)

type SessionType string

const (
	SessionTypeOnline     SessionType = "ONLINE"
	SessionTypeFaceToFace SessionType = "FACE_TO_FACE"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[DayOfWeek]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Weekday maps the enum to time.Weekday. The second return is false for an
// unknown value.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	wd, ok := weekdays[d]
	return wd, ok
}

// TimeSlot is a teacher-published recurring weekly availability window.
// StartTime and EndTime are "HH:MM" 24-hour strings.
type TimeSlot struct {
	ID          int64       `json:"id"`
	TeacherID   int64       `json:"teacher_id"`
	Type        SlotType    `json:"type"`
	CourseCode  string      `json:"course_code,omitempty"`
	SkillName   string      `json:"skill_name,omitempty"`
	Day         DayOfWeek   `json:"day"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	Active      bool        `json:"active"`
	SessionType SessionType `json:"session_type"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Overlaps reports whether two half-open [start, end) windows intersect.
// Touching boundaries do not overlap. Fixed-width "HH:MM" strings compare
// correctly lexicographically.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}
