package booking

import (
	"fmt"
	"time"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

const minutesPerDay = 24 * 60

// Interval is a half-open [Start, End) range on the 0-1440 minute-of-day
// scale. Cross-midnight intervals are not supported.
type Interval struct {
	Start int
	End   int
}

// ParseMinutes converts an "HH:MM" time-of-day into minutes since midnight.
func ParseMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NewInterval builds the requested lesson interval. Rejects non-positive
// durations and intervals that would run past midnight.
func NewInterval(startHM string, durationHours float64) (Interval, error) {
	start, err := ParseMinutes(startHM)
	if err != nil {
		return Interval{}, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "invalid start time")
	}

	if durationHours <= 0 {
		return Interval{}, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "duration must be positive")
	}

	end := start + int(durationHours*60)
	if end <= start || end > minutesPerDay {
		return Interval{}, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "lesson may not run past midnight")
	}

	return Interval{Start: start, End: end}, nil
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}

// Overlaps uses the half-open test: touching endpoints do not conflict, so
// back-to-back lessons are allowed.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}
