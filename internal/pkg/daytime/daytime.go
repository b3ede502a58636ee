// Package daytime provides minute-resolution time-of-day and duration
// values for the timekeeping engine. All segment math happens in whole
// minutes since midnight; callers own day-boundary semantics.
package daytime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay is the number of minutes in one logical day.
const MinutesPerDay = 1440

// ErrInvalidTimeValue is returned for malformed or out-of-range
// time-of-day input. It is fatal to a computation run.
var ErrInvalidTimeValue = errors.New("invalid time value")

// TimeOfDay is a time of day in minutes since midnight. The zero value
// is midnight. MinutesPerDay (rendered "24:00") is accepted so a
// window or segment can end on the day boundary exclusively.
type TimeOfDay struct {
	mins int
}

var timeOfDayRegex = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})(?::[0-9]{2})?$`)

// Parse parses "HH:MM" (a trailing ":SS" is accepted and dropped;
// stored schedules use second precision in places).
func Parse(text string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(text)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeValue, text)
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeValue, text)
	}
	return FromMinutes(hh*60 + mm)
}

// FromMinutes builds a TimeOfDay from minutes since midnight.
// Accepts 0 through MinutesPerDay inclusive.
func FromMinutes(n int) (TimeOfDay, error) {
	if n < 0 || n > MinutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %d minutes", ErrInvalidTimeValue, n)
	}
	return TimeOfDay{mins: n}, nil
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.mins
}

// Add returns the time n minutes later, wrapping within the day.
// Callers crossing midnight must handle the day change themselves.
func (t TimeOfDay) Add(n int) TimeOfDay {
	m := (t.mins + n) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay{mins: m}
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.mins < u.mins
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.mins/60, t.mins%60)
}

// Minutes is a non-negative duration in whole minutes.
type Minutes int

// DurationOf builds a Minutes value, rejecting negative counts.
func DurationOf(n int) (Minutes, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative duration %d", ErrInvalidTimeValue, n)
	}
	return Minutes(n), nil
}

// String renders the duration as "H:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}
