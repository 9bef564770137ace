package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
)

// APIResponse is the envelope every endpoint renders.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

// Fail writes an error envelope. details may carry field-level validation
// messages or a business error code.
func Fail(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, errEnvelope(ctx, status, message, details))
}

// Abort writes an error envelope and stops the handler chain. Used by
// middleware that rejects a request before any handler runs.
func Abort(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, errEnvelope(ctx, status, message, details))
}

// FromError maps an application error to its HTTP rendering. Anything outside
// the taxonomy becomes a generic 500 so internal detail never reaches clients.
func FromError(ctx *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		Fail(ctx, ae.Status(), ae.Error(), ae.Code())
		return
	}
	Fail(ctx, http.StatusInternalServerError, "internal server error", nil)
}

func errEnvelope(ctx *gin.Context, status int, message string, details interface{}) APIResponse[any] {
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	}
}
