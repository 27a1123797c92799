package controllers

import (
	"errors"
	"net/http"

	"category-services-backend/services"
	"category-services-backend/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondWithServiceError maps store and transaction errors to responses.
func respondWithServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithValidationErrors(c, validationErr.Fields)
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
	case errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Service not found in this category")
	case errors.Is(err, services.ErrCategoryHasServices):
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete category with services. Please remove all services first.")
	default:
		log.WithFields(log.Fields{
			"request_id": c.GetString("requestId"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID validates a numeric path parameter, recording a violation when it
// is not a positive integer.
func pathID(c *gin.Context, name, message string, fields *[]utils.FieldError) uint {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		*fields = append(*fields, utils.FieldError{Field: name, Message: message})
	}
	return id
}
