package booking

import (
	"time"

	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a validated status change and stamps the matching
// timestamp. Timestamps are set exactly once: each target status is only
// reachable from one live state, so re-entry always fails validation first.
// A transition either fully applies or leaves the record untouched.
func Transition(b *models.Booking, next Status, role Role, now time.Time) error {
	if err := ValidateTransition(Status(b.Status), next, role); err != nil {
		return err
	}

	b.Status = string(next)
	switch next {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}

	return nil
}

func Confirm(b *models.Booking, role Role, now time.Time) error {
	return Transition(b, StatusConfirmed, role, now)
}

func Complete(b *models.Booking, role Role, now time.Time) error {
	return Transition(b, StatusCompleted, role, now)
}

func Cancel(b *models.Booking, role Role, now time.Time, reason string) error {
	if err := Transition(b, StatusCancelled, role, now); err != nil {
		return err
	}
	if reason != "" {
		b.CancellationReason = reason
	}
	return nil
}

// SessionStart is the lesson's start instant in the market timezone.
func SessionStart(b *models.Booking, loc *time.Location) time.Time {
	y, m, d := b.ScheduledDate.Date()
	return time.Date(y, m, d, b.StartMinute/60, b.StartMinute%60, 0, 0, loc)
}

// CanCancelWithNotice is the 24-hour notice guard applied to parent-initiated
// cancellation through the dedicated cancel operation. It is deliberately NOT
// applied on the generic status-update path used by teacher/admin; keeping it
// as a single predicate makes that policy a one-line change.
func CanCancelWithNotice(b *models.Booking, now time.Time, loc *time.Location) bool {
	return now.Before(SessionStart(b, loc).Add(-24 * time.Hour))
}
