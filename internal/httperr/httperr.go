package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Respond renders a service-layer error. Business errors map to deterministic
// status codes; anything else is logged and hidden behind a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		Write(c, http.StatusInternalServerError, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindValidation, KindInvalidState:
		Write(c, http.StatusBadRequest, be.Code, be.Message)
	case KindUnauthenticated:
		Write(c, http.StatusUnauthorized, be.Code, be.Message)
	case KindForbidden:
		Write(c, http.StatusForbidden, be.Code, be.Message)
	case KindNotFound:
		Write(c, http.StatusNotFound, be.Code, be.Message)
	case KindConflict:
		Write(c, http.StatusConflict, be.Code, be.Message)
	case KindUpstream:
		log.Error().Err(be.cause).Str("code", be.Code).Str("path", c.FullPath()).Msg("upstream failure")
		Write(c, http.StatusInternalServerError, be.Code, be.Message)
	default:
		Write(c, http.StatusInternalServerError, be.Code, be.Message)
	}
}
