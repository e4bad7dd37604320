package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/activity-atlas/server/internal/schemas"
	"github.com/activity-atlas/server/internal/utils"
)

// ValidateAndSanitizeStruct binds the JSON body into a fresh instance of the
// given struct type, sanitizes and validates it, aborting with 422 on any
// failure so no store access happens for malformed input. Requests run in
// parallel, so every request binds into its own instance; the argument only
// provides the type.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	payloadType := reflect.TypeOf(obj).Elem()

	return func(c *gin.Context) {
		payload := reflect.New(payloadType).Interface()

		if err := c.ShouldBindJSON(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, &schemas.ErrorDTO{Message: schemas.BadRequest.Message})
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, &schemas.ErrorDTO{Message: schemas.BadRequest.Message})
			return
		}

		if err := validator.Validate.Struct(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, &schemas.ErrorDTO{Message: schemas.BadRequest.Message})
			return
		}

		// Set the sanitized object in the context
		c.Set(utils.SanitizedPayloadKey.String(), payload)
		c.Next()
	}
}
