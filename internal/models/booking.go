package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherID uint `gorm:"index:idx_booking_teacher_date,priority:1;not null" json:"teacher_id"`
	ParentID  uint `gorm:"index;not null" json:"parent_id"`

	Subject       string  `gorm:"size:100;not null" json:"subject"`
	GradeLevel    string  `gorm:"size:50" json:"grade_level"`
	SessionType   string  `gorm:"size:20;not null" json:"session_type"` // online | in_person
	DurationHours float64 `gorm:"default:1" json:"duration_hours"`

	ScheduledDate time.Time `gorm:"type:date;index:idx_booking_teacher_date,priority:2;not null" json:"scheduled_date"`
	StartTime     string    `gorm:"size:10;not null" json:"start_time"` // "14:00"
	EndTime       string    `gorm:"size:10;not null" json:"end_time"`   // "15:00"

	// Minute-of-day bounds, backing the exclusion constraint that keeps two
	// active bookings from overlapping on the same (teacher, date).
	StartMinute int `gorm:"not null" json:"-"`
	EndMinute   int `gorm:"not null" json:"-"`

	Location    string `gorm:"size:255" json:"location"`
	MeetingLink string `gorm:"size:500" json:"meeting_link"`

	// Price snapshot taken at creation; never recomputed if the teacher's
	// rate changes later.
	HourlyRate       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Currency         string          `gorm:"size:10;default:'QAR'" json:"currency"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"commission_amount"`
	TeacherAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"teacher_amount"`

	Status        string `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	SpecialRequests    string `gorm:"type:text" json:"special_requests"`
	TeacherNotes       string `gorm:"type:text" json:"teacher_notes"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
