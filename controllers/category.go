// controllers/category.go
package controllers

import (
	"net/http"
	"strings"

	"category-services-backend/services"
	"category-services-backend/utils"

	"github.com/gin-gonic/gin"
)

// CategoryInput is the body of category create and rename requests.
type CategoryInput struct {
	CategoryName string `json:"categoryName" validate:"required,min=2,max=255"`
}

type CategoryController struct {
	Store *services.CategoryStore
}

func NewCategoryController(store *services.CategoryStore) *CategoryController {
	return &CategoryController{Store: store}
}

// CreateCategory creates a new category
func (ctl *CategoryController) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidationErrors(c, utils.BindError(err))
		return
	}
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	if fields := utils.ValidateStruct(&input); fields != nil {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	category, err := ctl.Store.Create(c.Request.Context(), input.CategoryName)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// GetCategories lists every category with its services
func (ctl *CategoryController) GetCategories(c *gin.Context) {
	categories, err := ctl.Store.ListAll(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Categories retrieved successfully",
		"count":      len(categories),
		"categories": categories,
	})
}

// UpdateCategory renames a category
func (ctl *CategoryController) UpdateCategory(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidationErrors(c, append(fields, utils.BindError(err)...))
		return
	}
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	fields = append(fields, utils.ValidateStruct(&input)...)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	category, err := ctl.Store.Rename(c.Request.Context(), categoryID, input.CategoryName)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory deletes a category that has no services
func (ctl *CategoryController) DeleteCategory(c *gin.Context) {
	var fields []utils.FieldError
	categoryID := pathID(c, "categoryId", "Invalid category ID", &fields)
	if len(fields) > 0 {
		utils.RespondWithValidationErrors(c, fields)
		return
	}

	if err := ctl.Store.Delete(c.Request.Context(), categoryID); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
