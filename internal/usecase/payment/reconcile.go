package payment

import (
	"context"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
)

// Outcome is the normalized result of a provider event for one booking.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Reconciler applies provider payment outcomes to booking state. It is
// idempotent per booking: re-applying an outcome that already took effect is
// a no-op, which makes duplicate and out-of-order webhook delivery safe.
type Reconciler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewReconciler(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *Reconciler {
	return &Reconciler{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (r *Reconciler) Apply(
	ctx context.Context,
	bookingID uint,
	outcome Outcome,
) error {

	b, err := r.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	switch outcome {

	case OutcomeSucceeded:
		alreadyPaid := b.PaymentStatus == string(domain.PaymentPaid)
		if alreadyPaid && b.Status != string(domain.StatusPending) {
			return nil // already reconciled
		}

		b.PaymentStatus = string(domain.PaymentPaid)

		// Payment success confirms the lesson, but through the same
		// transition table as everything else: the provider has
		// admin-equivalent authority on pending->confirmed only. Bookings
		// already past pending keep their status.
		if b.Status == string(domain.StatusPending) {
			now := timezone.NowIn(r.tz)
			if err := domain.Confirm(b, domain.RoleProvider, now); err != nil {
				return err
			}
			domain.AssignMeetingLink(b)
		}

	case OutcomeFailed:
		// A success already recorded wins over a late/duplicate failure.
		if b.PaymentStatus == string(domain.PaymentPaid) ||
			b.PaymentStatus == string(domain.PaymentFailed) {
			return nil
		}
		b.PaymentStatus = string(domain.PaymentFailed)

	default:
		return nil
	}

	if err := r.repo.UpdateBooking(ctx, b); err != nil {
		return err
	}

	r.audit.Dispatch(audit.Event{
		Action:   "payment_reconciled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"outcome": string(outcome), "payment_status": b.PaymentStatus},
	})

	return nil
}
