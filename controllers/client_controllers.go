package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type ClientController struct {
	repo *services.Repository[models.Client]
}

func NewClientController(catalog *services.CatalogService) *ClientController {
	return &ClientController{repo: catalog.Clients}
}

type clientRequest struct {
	Name       string  `json:"nombre" binding:"required,max=100"`
	ExternalID string  `json:"cedula" binding:"required,max=20"`
	Phone      *string `json:"telefono" binding:"omitempty,max=20"`
	OrderCount *int    `json:"nro_ordenes" binding:"omitempty,gte=0"`
}

func (r clientRequest) apply(cl *models.Client) {
	cl.Name = r.Name
	cl.ExternalID = r.ExternalID
	cl.Phone = r.Phone
	if r.OrderCount != nil {
		cl.OrderCount = *r.OrderCount
	}
}

// kept lists the columns an update must not overwrite.
func (r clientRequest) kept() []string {
	if r.OrderCount == nil {
		return []string{"nro_ordenes"}
	}
	return nil
}

// GetAllClients -> list of clients
func (cc *ClientController) GetAllClients(c *gin.Context) {
	rows, err := cc.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of clients", rows)
}

// GetClient -> one client by id
func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	row, err := cc.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Client details", row)
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	var row models.Client
	req.apply(&row)
	if err := cc.repo.Create(c.Request.Context(), &row); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Client created successfully", row)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := cc.repo.Update(c.Request.Context(), id, req.apply, req.kept()...)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Client updated", row)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
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
