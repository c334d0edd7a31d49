package models

import "time"

type Teacher struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	FullName        string `gorm:"size:255;not null" json:"full_name"`
	Bio             string `gorm:"type:text" json:"bio"`
	City            string `gorm:"size:100" json:"city"`
	YearsExperience int    `json:"years_experience"`

	TeachesOnline   bool `gorm:"default:true" json:"teaches_online"`
	TeachesInPerson bool `gorm:"default:true" json:"teaches_in_person"`

	// Rates stay nullable: an unset rate means the teacher does not offer
	// that session type at all.
	HourlyRateOnline   *float64 `json:"hourly_rate_online"`
	HourlyRateInPerson *float64 `json:"hourly_rate_in_person"`
	Currency           string   `gorm:"size:10;default:'QAR'" json:"currency"`

	// Connected payment account, required before payouts can be requested.
	StripeAccountID *string `gorm:"size:255" json:"stripe_account_id"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
