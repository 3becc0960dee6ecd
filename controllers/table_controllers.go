package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type TableController struct {
	repo   *services.Repository[models.Table]
	tables *services.TableService
	hub    *kds.Hub
}

func NewTableController(catalog *services.CatalogService, tables *services.TableService, hub *kds.Hub) *TableController {
	return &TableController{repo: catalog.Tables, tables: tables, hub: hub}
}

// CreateTable -> add a table, free unless told otherwise
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int    `json:"numero" binding:"required,gt=0"`
		Capacity int    `json:"capacidad" binding:"gte=0"`
		State    string `json:"estado" binding:"omitempty,tablestate"`
	}
	if !bindJSON(c, &req) {
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		State:    req.State,
	}
	if err := tc.repo.Create(c.Request.Context(), &table); err != nil {
		respondServiceError(c, err)
		return
	}

	tc.hub.Broadcast(kds.EventTableUpdate, table)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> every table, optionally filtered by ?estado=
func (tc *TableController) GetAllTables(c *gin.Context) {
	state := c.Query("estado")
	if state != "" && !models.ValidTableState(state) {
		utils.RespondError(c, http.StatusBadRequest, errUnknownState(state))
		return
	}
	tables, err := tc.repo.List(c.Request.Context(), services.TablesInState(state))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	table, err := tc.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table details", table)
}

// UpdateTableStatus -> front-of-house state override
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		State string `json:"estado" binding:"required,tablestate"`
	}
	if !bindJSON(c, &body) {
		return
	}

	table, err := tc.tables.SetState(c.Request.Context(), id, body.State)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.hub.Broadcast(kds.EventTableUpdate, table)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> remove a table that is not occupied
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := tc.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	tc.hub.Broadcast(kds.EventTableUpdate, gin.H{"id": id, "deleted": true})
	c.Status(http.StatusNoContent)
}
