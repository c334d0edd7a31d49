package booking

import (
	"sort"
	"time"

	"github.com/eduqar/tutor-marketplace/internal/models"
)

// WindowsForDate resolves a teacher's availability rows into the ordered set
// of windows applying to one calendar date. Recurring weekday windows and
// one-time windows for the exact date are unioned: a one-time entry adds
// availability, it does not override the recurring schedule for that day.
// No windows means the teacher is fully unavailable on that date.
func WindowsForDate(rows []models.TeacherAvailability, date time.Time) []Interval {
	weekday := int(date.Weekday())
	y, m, d := date.Date()

	var windows []Interval
	for _, row := range rows {
		if row.IsRecurring {
			if row.DayOfWeek != weekday {
				continue
			}
		} else {
			if row.SpecificDate == nil {
				continue
			}
			sy, sm, sd := row.SpecificDate.Date()
			if sy != y || sm != m || sd != d {
				continue
			}
		}

		start, err := ParseMinutes(row.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseMinutes(row.EndTime)
		if err != nil || end <= start {
			continue
		}

		windows = append(windows, Interval{Start: start, End: end})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start < windows[j].Start
	})

	return windows
}

// IsSlotFree decides admissibility of a requested interval. The request must
// be fully contained in a single window; partial coverage across adjacent
// windows is rejected even when their union would cover it. It must also not
// overlap any of the existing active booking intervals.
func IsSlotFree(windows []Interval, req Interval, existing []Interval) bool {
	contained := false
	for _, w := range windows {
		if w.Contains(req) {
			contained = true
			break
		}
	}
	if !contained {
		return false
	}

	for _, b := range existing {
		if req.Overlaps(b) {
			return false
		}
	}

	return true
}

// ActiveIntervals extracts the minute intervals of bookings that still block
// time, i.e. pending or confirmed ones.
func ActiveIntervals(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		s := Status(b.Status)
		if s != StatusPending && s != StatusConfirmed {
			continue
		}
		out = append(out, Interval{Start: b.StartMinute, End: b.EndMinute})
	}
	return out
}
