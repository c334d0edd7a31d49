package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

// fakeIntentClient records the params of the last New call and serves canned
// intents on Get.
type fakeIntentClient struct {
	lastParams *stripe.PaymentIntentParams
	intents    map[string]*stripe.PaymentIntent
}

var _ IntentClient = (*fakeIntentClient)(nil)

func (f *fakeIntentClient) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.lastParams = params
	return &stripe.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
	}, nil
}

func (f *fakeIntentClient) Get(id string, _ *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	pi, ok := f.intents[id]
	if !ok {
		return nil, &stripe.Error{Code: stripe.ErrorCodeResourceMissing}
	}
	return pi, nil
}

var parentActor = domain.Actor{UserID: 20}

func TestCreateIntentAmountInSmallestUnit(t *testing.T) {
	b := pendingBooking()
	b.TotalAmount = decimal.RequireFromString("187.50")
	b.Currency = "QAR"
	store := newBookingStore(b)
	client := &fakeIntentClient{}

	uc := NewCreateIntent(store, client, audit.NewDiscardDispatcher())

	out, err := uc.Execute(context.Background(), parentActor, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(18750), out.Amount)
	assert.Equal(t, "pi_test", out.PaymentIntentID)
	assert.Equal(t, "pi_test_secret", out.ClientSecret)
	assert.Equal(t, "QAR", out.Currency)

	require.NotNil(t, client.lastParams)
	assert.Equal(t, int64(18750), *client.lastParams.Amount)
	assert.Equal(t, "qar", *client.lastParams.Currency)
	assert.Equal(t, "1", client.lastParams.Metadata["booking_id"])
	assert.Equal(t, "20", client.lastParams.Metadata["parent_id"])
}

func TestCreateIntentRejectsAlreadyPaid(t *testing.T) {
	b := pendingBooking()
	b.PaymentStatus = string(domain.PaymentPaid)
	store := newBookingStore(b)

	uc := NewCreateIntent(store, &fakeIntentClient{}, audit.NewDiscardDispatcher())

	_, err := uc.Execute(context.Background(), parentActor, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCreateIntentRejectsCancelledBooking(t *testing.T) {
	b := pendingBooking()
	b.Status = string(domain.StatusCancelled)
	store := newBookingStore(b)

	uc := NewCreateIntent(store, &fakeIntentClient{}, audit.NewDiscardDispatcher())

	_, err := uc.Execute(context.Background(), parentActor, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCreateIntentForeignParentForbidden(t *testing.T) {
	store := newBookingStore(pendingBooking())

	uc := NewCreateIntent(store, &fakeIntentClient{}, audit.NewDiscardDispatcher())

	_, err := uc.Execute(context.Background(), domain.Actor{UserID: 55}, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestConfirmPaymentSucceededIntent(t *testing.T) {
	store := newBookingStore(pendingBooking())
	client := &fakeIntentClient{intents: map[string]*stripe.PaymentIntent{
		"pi_ok": {
			ID:       "pi_ok",
			Status:   stripe.PaymentIntentStatusSucceeded,
			Metadata: map[string]string{"booking_id": "1"},
		},
	}}

	uc := NewConfirmPayment(store, client, newTestReconciler(store))

	out, err := uc.Execute(context.Background(), parentActor, "pi_ok")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), out.Status)
	assert.Equal(t, string(domain.PaymentPaid), out.PaymentStatus)
	assert.Equal(t, string(stripe.PaymentIntentStatusSucceeded), out.IntentStatus)
}

func TestConfirmPaymentRequiresPaymentMethodMapsToFailed(t *testing.T) {
	store := newBookingStore(pendingBooking())
	client := &fakeIntentClient{intents: map[string]*stripe.PaymentIntent{
		"pi_bad": {
			ID:       "pi_bad",
			Status:   stripe.PaymentIntentStatusRequiresPaymentMethod,
			Metadata: map[string]string{"booking_id": "1"},
		},
	}}

	uc := NewConfirmPayment(store, client, newTestReconciler(store))

	out, err := uc.Execute(context.Background(), parentActor, "pi_bad")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentFailed), out.PaymentStatus)
	assert.Equal(t, string(domain.StatusPending), out.Status)
}

func TestConfirmPaymentProcessingLeavesBookingAlone(t *testing.T) {
	store := newBookingStore(pendingBooking())
	client := &fakeIntentClient{intents: map[string]*stripe.PaymentIntent{
		"pi_wip": {
			ID:       "pi_wip",
			Status:   stripe.PaymentIntentStatusProcessing,
			Metadata: map[string]string{"booking_id": "1"},
		},
	}}

	uc := NewConfirmPayment(store, client, newTestReconciler(store))

	out, err := uc.Execute(context.Background(), parentActor, "pi_wip")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentPending), out.PaymentStatus)
	assert.Equal(t, string(domain.StatusPending), out.Status)
	assert.Zero(t, store.updates)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	store := newBookingStore(pendingBooking())
	client := &fakeIntentClient{}

	uc := NewConfirmPayment(store, client, newTestReconciler(store))

	_, err := uc.Execute(context.Background(), parentActor, "pi_missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestConfirmPaymentIntentWithoutBookingReference(t *testing.T) {
	store := newBookingStore(pendingBooking())
	client := &fakeIntentClient{intents: map[string]*stripe.PaymentIntent{
		"pi_naked": {
			ID:     "pi_naked",
			Status: stripe.PaymentIntentStatusSucceeded,
		},
	}}

	uc := NewConfirmPayment(store, client, newTestReconciler(store))

	_, err := uc.Execute(context.Background(), parentActor, "pi_naked")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
