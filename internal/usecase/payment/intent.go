package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

// IntentClient is the slice of the Stripe payment-intent API the usecases
// touch. The real client is package-level functions, so tests swap this out.
type IntentClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeClient struct{}

func (stripeClient) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (stripeClient) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

func NewStripeClient() IntentClient {
	return stripeClient{}
}

// ===============================
// Create payment intent
// ===============================

type CreateIntentOutput struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type CreateIntent struct {
	repo   domain.Repository
	client IntentClient
	audit  *audit.Dispatcher
}

func NewCreateIntent(
	repo domain.Repository,
	client IntentClient,
	audit *audit.Dispatcher,
) *CreateIntent {
	return &CreateIntent{
		repo:   repo,
		client: client,
		audit:  audit,
	}
}

func (uc *CreateIntent) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
) (*CreateIntentOutput, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "booking not found")
	}

	if !actor.IsAdmin && b.ParentID != actor.UserID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if b.PaymentStatus == string(domain.PaymentPaid) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidTransition, "booking is already paid")
	}
	if b.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidTransition, "booking is cancelled")
	}

	// Stripe amounts are in the currency's smallest unit.
	amount := b.TotalAmount.Mul(decimalHundred).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(b.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", fmt.Sprintf("%d", b.ID))
	params.AddMetadata("teacher_id", fmt.Sprintf("%d", b.TeacherID))
	params.AddMetadata("parent_id", fmt.Sprintf("%d", b.ParentID))

	pi, err := uc.client.New(params)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "payment_intent_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"payment_intent_id": pi.ID, "amount": amount},
	})

	return &CreateIntentOutput{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Amount:          amount,
		Currency:        b.Currency,
	}, nil
}
