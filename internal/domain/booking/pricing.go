package booking

import (
	"github.com/shopspring/decimal"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

const (
	SessionOnline   = "online"
	SessionInPerson = "in_person"
)

// Quote is the price snapshot computed at booking time. Amounts are decimal
// so commission + teacherAmount == total holds exactly.
type Quote struct {
	HourlyRate    decimal.Decimal
	Total         decimal.Decimal
	Commission    decimal.Decimal
	TeacherAmount decimal.Decimal
	Currency      string
}

// Price computes the quote for a session. The applicable hourly rate depends
// on the session type; an unset rate means the teacher does not offer that
// type. commissionRate is the platform share of the total (injected from
// config, 0.15 by default).
func Price(t *models.Teacher, sessionType string, durationHours float64, commissionRate decimal.Decimal) (*Quote, error) {
	var rate *float64
	switch sessionType {
	case SessionOnline:
		rate = t.HourlyRateOnline
	case SessionInPerson:
		rate = t.HourlyRateInPerson
	}
	if rate == nil {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeUnavailableSessionType,
			"teacher does not offer this session type or pricing not set",
		)
	}

	hourly := decimal.NewFromFloat(*rate).Round(2)
	total := hourly.Mul(decimal.NewFromFloat(durationHours)).Round(2)
	commission := total.Mul(commissionRate).Round(2)
	teacherAmount := total.Sub(commission)

	return &Quote{
		HourlyRate:    hourly,
		Total:         total,
		Commission:    commission,
		TeacherAmount: teacherAmount,
		Currency:      t.Currency,
	}, nil
}
