package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/httpresp"
	"github.com/eduqar/tutor-marketplace/internal/middleware"
	ucPayout "github.com/eduqar/tutor-marketplace/internal/usecase/payout"
)

// ======================================================
// HANDLER
// ======================================================

type PayoutHandler struct {
	requestUC *ucPayout.RequestPayout
	processUC *ucPayout.ProcessPayout
	listUC    *ucPayout.ListPayouts
}

func NewPayoutHandler(
	requestUC *ucPayout.RequestPayout,
	processUC *ucPayout.ProcessPayout,
	listUC *ucPayout.ListPayouts,
) *PayoutHandler {
	return &PayoutHandler{
		requestUC: requestUC,
		processUC: processUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestPayoutRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type ProcessPayoutRequest struct {
	Status     string `json:"status" binding:"required,oneof=processing paid failed"`
	TransferID string `json:"transfer_id"`
}

// ======================================================
// REQUEST PAYOUT
// ======================================================

func (h *PayoutHandler) Request(c *gin.Context) {
	actor := actorFromContext(c)

	teacherID, ok := parseID(c)
	if !ok {
		return
	}

	var req RequestPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	record, err := h.requestUC.Execute(c.Request.Context(), actor, ucPayout.RequestPayoutInput{
		TeacherID: teacherID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondBusinessError(c, err, "failed_to_request_payout")
		return
	}

	httpresp.Created(c, record)
}

// ======================================================
// LIST
// ======================================================

func (h *PayoutHandler) List(c *gin.Context) {
	actor := actorFromContext(c)

	teacherID, ok := parseID(c)
	if !ok {
		return
	}

	records, err := h.listUC.Execute(c.Request.Context(), actor, teacherID)
	if err != nil {
		respondBusinessError(c, err, "failed_to_list_payouts")
		return
	}

	httpresp.List(c, records)
}

// ======================================================
// PROCESS (admin)
// ======================================================

func (h *PayoutHandler) Process(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	payoutID, ok := parseID(c)
	if !ok {
		return
	}

	var req ProcessPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	record, err := h.processUC.Execute(c.Request.Context(), adminID, ucPayout.ProcessPayoutInput{
		PayoutID:   payoutID,
		Status:     req.Status,
		TransferID: req.TransferID,
	})
	if err != nil {
		respondBusinessError(c, err, "failed_to_process_payout")
		return
	}

	c.JSON(http.StatusOK, record)
}
