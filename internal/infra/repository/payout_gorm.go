package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/payout"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

type PayoutGormRepository struct {
	db *gorm.DB
}

func NewPayoutGormRepository(db *gorm.DB) *PayoutGormRepository {
	return &PayoutGormRepository{db: db}
}

func (r *PayoutGormRepository) CreatePayout(
	ctx context.Context,
	p *models.PayoutRecord,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PayoutGormRepository) GetPayoutByID(
	ctx context.Context,
	id uint,
) (*models.PayoutRecord, error) {

	var p models.PayoutRecord
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayoutGormRepository) ListPayoutsForTeacher(
	ctx context.Context,
	teacherID uint,
) ([]models.PayoutRecord, error) {

	var payouts []models.PayoutRecord
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&payouts).Error; err != nil {
		return nil, err
	}

	return payouts, nil
}

func (r *PayoutGormRepository) UpdatePayout(
	ctx context.Context,
	p *models.PayoutRecord,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Compile-time check
var _ domain.Repository = (*PayoutGormRepository)(nil)
