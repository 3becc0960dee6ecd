package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type CategoryController struct {
	repo *services.Repository[models.Category]
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{repo: catalog.Categories}
}

type categoryRequest struct {
	Name string `json:"nombre" binding:"required,max=100"`
}

// GetAllCategories -> list of categories
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	rows, err := cc.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", rows)
}

// CreateCategory -> add a category
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	row := models.Category{Name: req.Name}
	if err := cc.repo.Create(c.Request.Context(), &row); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created successfully", row)
}

// UpdateCategory -> replace a category
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := cc.repo.Update(c.Request.Context(), id, func(cat *models.Category) {
		cat.Name = req.Name
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", row)
}

// DeleteCategory -> remove a category without products
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
