package payment

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

var decimalHundred = decimal.NewFromInt(100)

// ConfirmPayment is the synchronous fallback to the webhook: the client polls
// the intent after checkout and we reconcile from its live status. The result
// flows through the same Reconciler, so webhook and polling can race freely.
type ConfirmPayment struct {
	repo       domain.Repository
	client     IntentClient
	reconciler *Reconciler
}

func NewConfirmPayment(
	repo domain.Repository,
	client IntentClient,
	reconciler *Reconciler,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:       repo,
		client:     client,
		reconciler: reconciler,
	}
}

type ConfirmPaymentOutput struct {
	BookingID     uint   `json:"booking_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	IntentStatus  string `json:"intent_status"`
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	actor domain.Actor,
	intentID string,
) (*ConfirmPaymentOutput, error) {

	pi, err := uc.client.Get(intentID, nil)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "payment intent not found")
	}

	bookingID, err := bookingIDFromMetadata(pi.Metadata)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	if !actor.IsAdmin && b.ParentID != actor.UserID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		if err := uc.reconciler.Apply(ctx, bookingID, OutcomeSucceeded); err != nil {
			return nil, err
		}
	case stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusCanceled:
		if err := uc.reconciler.Apply(ctx, bookingID, OutcomeFailed); err != nil {
			return nil, err
		}
	default:
		// still processing; report without touching the booking
	}

	b, err = uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &ConfirmPaymentOutput{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		IntentStatus:  string(pi.Status),
	}, nil
}

func bookingIDFromMetadata(meta map[string]string) (uint, error) {
	raw, ok := meta["booking_id"]
	if !ok {
		return 0, httperr.ErrBusinessMsg(httperr.CodeNotFound, "intent has no booking reference")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, httperr.ErrBusinessMsg(httperr.CodeNotFound, "intent has no booking reference")
	}
	return uint(id), nil
}
