package payout

import (
	"context"

	"github.com/eduqar/tutor-marketplace/internal/models"
)

type Repository interface {
	CreatePayout(
		ctx context.Context,
		p *models.PayoutRecord,
	) error

	GetPayoutByID(
		ctx context.Context,
		id uint,
	) (*models.PayoutRecord, error)

	// ListPayoutsForTeacher returns the ledger newest first.
	ListPayoutsForTeacher(
		ctx context.Context,
		teacherID uint,
	) ([]models.PayoutRecord, error)

	UpdatePayout(
		ctx context.Context,
		p *models.PayoutRecord,
	) error
}
