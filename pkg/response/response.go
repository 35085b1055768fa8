package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every failed API response.
type ErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageBody is returned by operations that have nothing else to report.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes data with the given status, defaulting to 200.
func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

func Message(ctx *gin.Context, status int, message string) {
	JSON(ctx, status, MessageBody{Message: message})
}

// Error aborts the chain and writes an ErrorBody. details may be nil.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if len(details) == 0 {
		details = nil
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Message: message, Errors: details})
}
