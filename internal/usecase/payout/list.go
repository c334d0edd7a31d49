package payout

import (
	"context"

	bookingdomain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	payoutdomain "github.com/eduqar/tutor-marketplace/internal/domain/payout"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

type ListPayouts struct {
	payouts  payoutdomain.Repository
	teachers bookingdomain.Repository
}

func NewListPayouts(
	payouts payoutdomain.Repository,
	teachers bookingdomain.Repository,
) *ListPayouts {
	return &ListPayouts{
		payouts:  payouts,
		teachers: teachers,
	}
}

// Execute returns a teacher's payout ledger, newest first. Only the teacher
// owning the profile or an admin may read it.
func (uc *ListPayouts) Execute(
	ctx context.Context,
	actor bookingdomain.Actor,
	teacherID uint,
) ([]models.PayoutRecord, error) {

	teacher, err := uc.teachers.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "teacher not found")
	}

	if !actor.IsAdmin && teacher.UserID != actor.UserID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return uc.payouts.ListPayoutsForTeacher(ctx, teacher.ID)
}
