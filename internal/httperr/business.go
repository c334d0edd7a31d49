package httperr

import "errors"

// Business error codes shared between domain, usecase and HTTP layers.
const (
	CodeNotFound               = "not_found"
	CodeForbidden              = "forbidden"
	CodeInvalidTransition      = "invalid_transition"
	CodeSlotUnavailable        = "slot_unavailable"
	CodeUnavailableSessionType = "unavailable_session_type"
	CodeNoPayoutAccount        = "no_payout_account"
	CodeInvalidSignature       = "invalid_signature"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
