package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/skillswap/skillswap_api/internal/model"
)

// parseClock parses an "HH:MM" 24-hour string. Both fields must be exactly
// two digits: stored times are compared lexicographically, which is only
// correct for fixed-width strings.
func parseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	for _, ch := range s[:2] + s[3:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
		}
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return hour, minute, nil
}

// NextOccurrence projects a recurring weekly slot onto the next concrete
// calendar date after now. A slot on today's weekday rolls forward a full
// week, regardless of the time of day.
func NextOccurrence(now time.Time, slot *model.TimeSlot) (startAt, endAt time.Time, err error) {
	weekday, ok := slot.Day.Weekday()
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid day of week %q", slot.Day)
	}

	sh, sm, err := parseClock(slot.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := parseClock(slot.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	date := now.AddDate(0, 0, days)

	startAt = time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, now.Location())
	endAt = time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, now.Location())
	return startAt, endAt, nil
}
