package booking

import (
	"context"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
)

type UpdateBookingInput struct {
	Actor     domain.Actor
	BookingID uint

	Status       string // empty = no status change
	TeacherNotes string // empty = keep
}

// UpdateBooking is the generic status/notes update path used by teacher and
// admin (and by parents for the transitions their role allows). The 24h
// cancellation notice guard deliberately does not apply here, only on the
// dedicated cancel operation.
type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	teacher, err := uc.repo.GetTeacherByID(ctx, b.TeacherID)
	if err != nil {
		return nil, err
	}

	role, err := domain.ResolveRole(in.Actor, b, teacher.UserID)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		next := domain.Status(in.Status)
		if !domain.IsValidStatus(next) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidTransition, "unknown status")
		}

		now := timezone.NowIn(uc.tz)
		if err := domain.Transition(b, next, role, now); err != nil {
			return nil, err
		}

		if next == domain.StatusConfirmed {
			domain.AssignMeetingLink(b)
		}
	}

	if in.TeacherNotes != "" {
		b.TeacherNotes = in.TeacherNotes
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.UserID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": b.Status, "role": string(role)},
	})

	return b, nil
}
