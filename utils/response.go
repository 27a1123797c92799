package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a {"message": ...} body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// RespondWithValidationErrors aborts with 400 and the full list of violations.
func RespondWithValidationErrors(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  fields,
	})
}
