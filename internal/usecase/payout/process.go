package payout

import (
	"context"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	payoutdomain "github.com/eduqar/tutor-marketplace/internal/domain/payout"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
)

// ===============================
// Process payout (admin)
// ===============================

type ProcessPayoutInput struct {
	PayoutID   uint
	Status     string
	TransferID string
}

type ProcessPayout struct {
	payouts payoutdomain.Repository
	audit   *audit.Dispatcher
	tz      string
}

func NewProcessPayout(
	payouts payoutdomain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *ProcessPayout {
	return &ProcessPayout{
		payouts: payouts,
		audit:   audit,
		tz:      tz,
	}
}

func (uc *ProcessPayout) Execute(
	ctx context.Context,
	adminID uint,
	input ProcessPayoutInput,
) (*models.PayoutRecord, error) {

	record, err := uc.payouts.GetPayoutByID(ctx, input.PayoutID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "payout not found")
	}

	next := payoutdomain.Status(input.Status)
	if err := payoutdomain.ValidateTransition(payoutdomain.Status(record.Status), next); err != nil {
		return nil, err
	}

	record.Status = string(next)

	switch next {
	case payoutdomain.StatusPaid, payoutdomain.StatusFailed:
		now := timezone.NowIn(uc.tz)
		record.ProcessedAt = &now
		if next == payoutdomain.StatusPaid && input.TransferID != "" {
			record.TransferID = &input.TransferID
		}
	}

	if err := uc.payouts.UpdatePayout(ctx, record); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "payout_processed",
		Entity:   "payout",
		EntityID: &record.ID,
		Metadata: map[string]any{"status": record.Status},
	})

	return record, nil
}
