package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/activity-atlas/server/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it to the HTTP response
// with the provided status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the causing error and sends the mapped error with the specified
// status code. The raw error never reaches the response body.
func WriteAndLogError(ctx *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFieldsAndError(ctx, "error", "Returning error: "+customErr.Message, err)
	errorDto := &schemas.ErrorDTO{
		Message: customErr.Message,
	}
	ctx.JSON(statusCode, errorDto)
}
