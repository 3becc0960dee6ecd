package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type WaiterController struct {
	repo *services.Repository[models.Waiter]
}

func NewWaiterController(catalog *services.CatalogService) *WaiterController {
	return &WaiterController{repo: catalog.Waiters}
}

type waiterRequest struct {
	Name string `json:"nombre" binding:"required,max=100"`
}

func (wc *WaiterController) GetAllWaiters(c *gin.Context) {
	rows, err := wc.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of waiters", rows)
}

func (wc *WaiterController) CreateWaiter(c *gin.Context) {
	var req waiterRequest
	if !bindJSON(c, &req) {
		return
	}
	row := models.Waiter{Name: req.Name}
	if err := wc.repo.Create(c.Request.Context(), &row); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Waiter created successfully", row)
}

func (wc *WaiterController) UpdateWaiter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req waiterRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := wc.repo.Update(c.Request.Context(), id, func(w *models.Waiter) {
		w.Name = req.Name
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter updated", row)
}

func (wc *WaiterController) DeleteWaiter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := wc.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
