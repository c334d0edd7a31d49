package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

// respondBusinessError maps a business error code onto the right HTTP status.
// Anything without a code is an unexpected internal failure.
func respondBusinessError(c *gin.Context, err error, fallbackCode string) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, fallbackCode, "Unexpected error.")
		return
	}

	msg := code
	var be httperr.BusinessError
	if errors.As(err, &be) && be.Message != "" {
		msg = be.Message
	}

	switch code {
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, msg)
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
