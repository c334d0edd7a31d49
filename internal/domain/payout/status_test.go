package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(StatusPending, StatusProcessing))
	assert.NoError(t, ValidateTransition(StatusPending, StatusPaid))
	assert.NoError(t, ValidateTransition(StatusPending, StatusFailed))
	assert.NoError(t, ValidateTransition(StatusProcessing, StatusPaid))
	assert.NoError(t, ValidateTransition(StatusProcessing, StatusFailed))
}

func TestPaidAndFailedAreTerminal(t *testing.T) {
	for _, from := range []Status{StatusPaid, StatusFailed} {
		for _, to := range []Status{StatusPending, StatusProcessing, StatusPaid, StatusFailed} {
			err := ValidateTransition(from, to)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition),
				"%s -> %s must be rejected", from, to)
		}
	}
}

func TestNoBackwardsTransition(t *testing.T) {
	err := ValidateTransition(StatusProcessing, StatusPending)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}
