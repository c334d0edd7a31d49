package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutRecord is an append-only ledger entry. Once paid it is never
// updated in place.
type PayoutRecord struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TeacherID uint `gorm:"index;not null" json:"teacher_id"`

	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string          `gorm:"size:10;default:'QAR'" json:"currency"`

	Status string `gorm:"size:20;default:'pending'" json:"status"` // pending/processing/paid/failed

	TransferID *string `gorm:"size:255" json:"transfer_id"`

	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}
