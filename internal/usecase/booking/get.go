package booking

import (
	"context"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute returns a booking visible to the actor: its parent, its teacher,
// or an admin.
func (uc *GetBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	teacher, err := uc.repo.GetTeacherByID(ctx, b.TeacherID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.ResolveRole(actor, b, teacher.UserID); err != nil {
		return nil, err
	}

	return b, nil
}
