// Package timeofday converts between the HH:mm start time clients work with
// and the absolute due date that is persisted for a task.
package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layout is the wire format of a start time.
const Layout = "15:04"

var (
	ErrInvalidFormat = errors.New("start time must be HH:mm")
	// ErrSkippedTime is returned for a wall time that a daylight saving
	// transition skips on the reference day.
	ErrSkippedTime = errors.New("start time does not exist on that day")
)

var pattern = regexp.MustCompile(`^[0-2]\d:[0-5]\d$`)

// Parse validates s and returns its hour and minute. The pattern admits
// hours 24-29, so the hour is bounded separately.
func Parse(s string) (hour, minute int, err error) {
	if !pattern.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q is out of range", ErrInvalidFormat, s)
	}
	return hour, minute, nil
}

// ToDueDate places the time s on ref's calendar day, in ref's location,
// with seconds and nanoseconds zeroed. Wall times in a spring-forward gap
// are rejected so the result always renders back to s.
func ToDueDate(s string, ref time.Time) (time.Time, error) {
	hour, minute, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
	if d.Hour() != hour || d.Minute() != minute {
		return time.Time{}, fmt.Errorf("%w: %q on %s", ErrSkippedTime, s, ref.Format(time.DateOnly))
	}
	return d, nil
}

// ToTimeString renders dueDate as zero-padded 24-hour HH:mm in its own
// location. A nil due date yields nil.
func ToTimeString(dueDate *time.Time) *string {
	if dueDate == nil {
		return nil
	}
	s := dueDate.Format(Layout)
	return &s
}
