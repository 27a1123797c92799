// controllers/service.go
package controllers

import (
	"net/http"
	"strings"

	"category-services-backend/models"
	"category-services-backend/services"
	"category-services-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PriceOptionInput is one entry of the priceOptions array
type PriceOptionInput struct {
	Duration int              `json:"duration" validate:"required,gt=0"`
	Price    *decimal.Decimal `json:"price" validate:"required,gte=0,lte=99999999.99"`
	Type     string           `json:"type" validate:"required,oneof=Hourly Weekly Monthly"`
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	ServiceName  string             `json:"serviceName" validate:"required,min=2,max=255"`
	Type         string             `json:"type" validate:"omitempty,oneof=Normal VIP"`
	PriceOptions []PriceOptionInput `json:"priceOptions" validate:"required,min=1,dive"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service.
// A nil field was not supplied; a supplied priceOptions replaces the whole set.
type UpdateServiceInput struct {
	ServiceName  *string             `json:"serviceName" validate:"omitnil,min=2,max=255"`
	Type         *string             `json:"type" validate:"omitnil,oneof=Normal VIP"`
	PriceOptions *[]PriceOptionInput `json:"priceOptions" validate:"omitnil,min=1,dive"`
}

type ServiceController struct {
	Manager *services.ServiceManager
}

func NewServiceController(manager *services.ServiceManager) *ServiceController {
	return &ServiceController{Manager: manager}
}

// CreateService creates a service and its price options in one transaction
func (ctl *ServiceController) CreateService(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidationErrors(c, append(fields, utils.BindError(err)...))
		return
	}
	input.ServiceName = strings.TrimSpace(input.ServiceName)
	fields = append(fields, utils.ValidateStruct(&input)...)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	service, err := ctl.Manager.Create(c.Request.Context(), services.CreateServiceParams{
		CategoryID:   categoryID,
		Name:         input.ServiceName,
		Type:         models.ServiceType(input.Type),
		PriceOptions: toDrafts(input.PriceOptions),
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service created successfully",
		"service": service,
	})
}

// GetServices retrieves all services of a category with their price options
func (ctl *ServiceController) GetServices(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	category, list, err := ctl.Manager.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Services retrieved successfully",
		"category": category.CategoryName,
		"count":    len(list),
		"services": list,
	})
}

// UpdateService updates an existing service
func (ctl *ServiceController) UpdateService(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)
	serviceID := pathID(c, "serviceId", "Invalid service ID", &fields)

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidationErrors(c, append(fields, utils.BindError(err)...))
		return
	}
	if input.ServiceName != nil {
		trimmed := strings.TrimSpace(*input.ServiceName)
		input.ServiceName = &trimmed
	}
	fields = append(fields, utils.ValidateStruct(&input)...)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	patch := services.ServicePatch{
		Name: models.FromPtr(input.ServiceName),
	}
	if input.Type != nil {
		patch.Type = models.Some(models.ServiceType(*input.Type))
	}
	if input.PriceOptions != nil {
		patch.PriceOptions = models.Some(toDrafts(*input.PriceOptions))
	}

	service, err := ctl.Manager.Update(c.Request.Context(), categoryID, serviceID, patch)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service updated successfully",
		"service": service,
	})
}

// DeleteService deletes a service and, through the cascade, its price options
func (ctl *ServiceController) DeleteService(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)
	serviceID := pathID(c, "serviceId", "Invalid service ID", &fields)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	if err := ctl.Manager.Delete(c.Request.Context(), categoryID, serviceID); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func toDrafts(inputs []PriceOptionInput) []services.PriceOptionDraft {
	drafts := make([]services.PriceOptionDraft, len(inputs))
	for i, in := range inputs {
		price := decimal.Zero
		if in.Price != nil {
			price = *in.Price
		}
		drafts[i] = services.PriceOptionDraft{
			Duration: in.Duration,
			Price:    price,
			Type:     models.PriceOptionType(in.Type),
		}
	}
	return drafts
}
