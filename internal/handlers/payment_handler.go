package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/eduqar/tutor-marketplace/internal/config"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	ucPayment "github.com/eduqar/tutor-marketplace/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	config     *config.Config
	intentUC   *ucPayment.CreateIntent
	confirmUC  *ucPayment.ConfirmPayment
	reconciler *ucPayment.Reconciler
}

func NewPaymentHandler(
	cfg *config.Config,
	intentUC *ucPayment.CreateIntent,
	confirmUC *ucPayment.ConfirmPayment,
	reconciler *ucPayment.Reconciler,
) *PaymentHandler {
	return &PaymentHandler{
		config:     cfg,
		intentUC:   intentUC,
		confirmUC:  confirmUC,
		reconciler: reconciler,
	}
}

// ======================================================
// CREATE INTENT
// ======================================================

type CreateIntentRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	actor := actorFromContext(c)

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.intentUC.Execute(c.Request.Context(), actor, req.BookingID)
	if err != nil {
		respondBusinessError(c, err, "failed_to_create_intent")
		return
	}

	c.JSON(http.StatusCreated, out)
}

// ======================================================
// DIRECT CONFIRM
// ======================================================

func (h *PaymentHandler) Confirm(c *gin.Context) {
	actor := actorFromContext(c)
	intentID := c.Param("intent_id")

	out, err := h.confirmUC.Execute(c.Request.Context(), actor, intentID)
	if err != nil {
		respondBusinessError(c, err, "failed_to_confirm_payment")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// WEBHOOK
// ======================================================

// Webhook consumes provider events. Providers retry on non-2xx and deliver
// duplicates, so everything past signature verification acknowledges with
// 200 even when nothing was mutated.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Could not read request body.")
		return
	}

	var event stripe.Event

	switch {
	case h.config.StripeWebhookSecret != "":
		sig := c.GetHeader("Stripe-Signature")
		event, err = webhook.ConstructEvent(payload, sig, h.config.StripeWebhookSecret)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidSignature, "Webhook signature verification failed.")
			return
		}

	case h.config.AllowUnverifiedWebhooks:
		// local development only, gated by an explicit flag
		if err := json.Unmarshal(payload, &event); err != nil {
			httperr.BadRequest(c, "invalid_payload", "Malformed event payload.")
			return
		}

	default:
		httperr.BadRequest(c, httperr.CodeInvalidSignature, "Webhook secret not configured.")
		return
	}

	var outcome ucPayment.Outcome
	switch string(event.Type) {
	case "payment_intent.succeeded":
		outcome = ucPayment.OutcomeSucceeded
	case "payment_intent.payment_failed":
		outcome = ucPayment.OutcomeFailed
	default:
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	bookingID, ok := bookingIDFromEvent(&event)
	if !ok {
		// no booking reference: acknowledge and drop
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	// Unresolvable booking ids and transition no-ops are acknowledged too.
	_ = h.reconciler.Apply(c.Request.Context(), bookingID, outcome)

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func bookingIDFromEvent(event *stripe.Event) (uint, bool) {
	meta, ok := event.Data.Object["metadata"].(map[string]interface{})
	if !ok {
		return 0, false
	}

	raw, ok := meta["booking_id"].(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
