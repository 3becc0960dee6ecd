package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type ProductController struct {
	repo *services.Repository[models.Product]
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{repo: catalog.Products}
}

type productRequest struct {
	Name        string              `json:"nombre" binding:"required,max=100"`
	SalePrice   decimal.Decimal     `json:"precio_venta" binding:"gte=0"`
	SaleTax     decimal.NullDecimal `json:"impuesto_venta"`
	PurchaseTax decimal.NullDecimal `json:"impuesto_compra"`
	CategoryID  uint                `json:"categoria_id" binding:"required"`
	Reference   *string             `json:"referencia"`
	ImageLink   *string             `json:"link_imagen"`
}

func (r productRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.SalePrice = r.SalePrice
	p.SaleTax = r.SaleTax
	p.PurchaseTax = r.PurchaseTax
	p.CategoryID = r.CategoryID
	p.Reference = r.Reference
	p.ImageLink = r.ImageLink
}

// GetAllProducts -> list of products
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	rows, err := pc.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", rows)
}

// CreateProduct -> add a product to an existing category
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	var row models.Product
	req.apply(&row)
	if err := pc.repo.Create(c.Request.Context(), &row); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created successfully", row)
}

// UpdateProduct -> replace a product. Prices already captured on orders
// are not touched.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := pc.repo.Update(c.Request.Context(), id, req.apply)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", row)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := pc.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
