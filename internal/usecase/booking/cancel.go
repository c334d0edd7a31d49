package booking

import (
	"context"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
)

// CancelBooking is the dedicated cancel operation available to the booking's
// parent and to admins. A parent must give at least 24 hours notice before
// the session start; admins are exempt, as is any cancellation done through
// the generic update path.
type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	if !actor.IsAdmin && b.ParentID != actor.UserID {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden, "only the parent or an admin can cancel this booking")
	}

	role := domain.RoleAdmin
	if !actor.IsAdmin {
		role = domain.RoleParent
	}

	now := timezone.NowIn(uc.tz)
	loc := timezone.Location(uc.tz)

	if role == domain.RoleParent && !domain.CanCancelWithNotice(b, now, loc) {
		return nil, httperr.ErrBusinessMsg(
			"cancellation_window_closed",
			"cannot cancel booking less than 24 hours before session",
		)
	}

	if err := domain.Cancel(b, role, now, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return b, nil
}
