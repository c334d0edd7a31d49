package payout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	bookingdomain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	payoutdomain "github.com/eduqar/tutor-marketplace/internal/domain/payout"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ===============================
// Request payout
// ===============================

type RequestPayoutInput struct {
	TeacherID uint
	Amount    decimal.Decimal
}

type RequestPayout struct {
	payouts  payoutdomain.Repository
	teachers bookingdomain.Repository
	audit    *audit.Dispatcher
}

func NewRequestPayout(
	payouts payoutdomain.Repository,
	teachers bookingdomain.Repository,
	audit *audit.Dispatcher,
) *RequestPayout {
	return &RequestPayout{
		payouts:  payouts,
		teachers: teachers,
		audit:    audit,
	}
}

func (uc *RequestPayout) Execute(
	ctx context.Context,
	actor bookingdomain.Actor,
	input RequestPayoutInput,
) (*models.PayoutRecord, error) {

	teacher, err := uc.teachers.GetTeacherByID(ctx, input.TeacherID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "teacher not found")
	}

	if !actor.IsAdmin && teacher.UserID != actor.UserID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if teacher.StripeAccountID == nil || *teacher.StripeAccountID == "" {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeNoPayoutAccount,
			"teacher has no connected payout account",
		)
	}

	if !input.Amount.IsPositive() {
		return nil, httperr.ErrBusinessMsg("invalid_amount", "payout amount must be positive")
	}

	record := &models.PayoutRecord{
		TeacherID: teacher.ID,
		Amount:    input.Amount.Round(2),
		Currency:  teacher.Currency,
		Status:    string(payoutdomain.StatusPending),
	}

	if err := uc.payouts.CreatePayout(ctx, record); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "payout_requested",
		Entity:   "payout",
		EntityID: &record.ID,
		Metadata: map[string]any{"teacher_id": teacher.ID, "amount": record.Amount.String()},
	})

	return record, nil
}
