package dto

import "github.com/shopspring/decimal"

type BookingListDTO struct {
	ID            uint            `json:"id"`
	TeacherID     uint            `json:"teacher_id"`
	ParentID      uint            `json:"parent_id"`
	Subject       string          `json:"subject"`
	SessionType   string          `json:"session_type"`
	ScheduledDate string          `json:"scheduled_date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
}
