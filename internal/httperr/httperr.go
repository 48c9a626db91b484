package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
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

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotConflict, KindInvalidState:
		return http.StatusConflict
	case KindServiceUnavailable, KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindCodeExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError renders any use case error. Persistence details never leak.
func FromError(c *gin.Context, err error) {
	var be *BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}
	if be.Kind == KindPersistence {
		Internal(c, be.Code, "Storage failure.")
		return
	}
	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	Write(c, StatusFor(be.Kind), be.Code, msg)
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}
