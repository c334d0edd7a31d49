package payout

import "github.com/eduqar/tutor-marketplace/internal/httperr"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
)

// paid is terminal: a paid ledger entry is never updated in place.
var outgoing = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusPaid, StatusFailed},
	StatusProcessing: {StatusPaid, StatusFailed},
	StatusPaid:       {},
	StatusFailed:     {},
}

func ValidateTransition(current, next Status) error {
	for _, s := range outgoing[current] {
		if s == next {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}
