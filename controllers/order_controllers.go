package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

// floorEvents publishes committed order and table changes to the displays.
type floorEvents struct {
	tables *services.Repository[models.Table]
	hub    *kds.Hub
}

func (f floorEvents) send(event string, data interface{}) {
	f.hub.Broadcast(event, data)
}

// table pushes the current state of a table the request touched.
func (f floorEvents) table(ctx context.Context, id *uint) {
	if id == nil {
		return
	}
	table, err := f.tables.Get(ctx, *id)
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("table_id", *id).Warn("table broadcast skipped")
		return
	}
	f.hub.Broadcast(kds.EventTableUpdate, table)
}

type OrderController struct {
	orders *services.OrderService
	events floorEvents
}

func NewOrderController(orders *services.OrderService, catalog *services.CatalogService, hub *kds.Hub) *OrderController {
	return &OrderController{orders: orders, events: floorEvents{tables: catalog.Tables, hub: hub}}
}

// CreateOrder -> open an order, seating it when mesa is given
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		ClientID uint    `json:"cliente_id" binding:"required"`
		WaiterID uint    `json:"mesero_id" binding:"required"`
		TableID  *uint   `json:"mesa"`
		Status   string  `json:"estado"`
		Note     *string `json:"nota"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Status != "" && req.Status != models.OrderOpen {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("a new order must be %s", models.OrderOpen))
		return
	}

	order, err := oc.orders.Create(c.Request.Context(), services.CreateOrderInput{
		ClientID: req.ClientID,
		WaiterID: req.WaiterID,
		TableID:  req.TableID,
		Note:     req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	oc.events.send(kds.EventOrderUpdate, order)
	oc.events.table(c.Request.Context(), order.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetAllOrders -> list of orders
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	oc.list(c, services.OrderFilter{})
}

// GetOrdersByClient -> orders placed by one client
func (oc *OrderController) GetOrdersByClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	oc.list(c, services.OrderFilter{ClientID: &id})
}

// GetOrdersByTable -> orders placed at one table
func (oc *OrderController) GetOrdersByTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	oc.list(c, services.OrderFilter{TableID: &id})
}

func (oc *OrderController) list(c *gin.Context, filter services.OrderFilter) {
	orders, err := oc.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrder -> one order with its line items
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order details", order)
}

// UpdateOrder -> merge-patch; only the keys present in the body change
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var raw map[string]json.RawMessage
	if !bindJSON(c, &raw) {
		return
	}
	patch, err := parseOrderPatch(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	before, err := oc.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := oc.orders.Patch(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	oc.events.send(kds.EventOrderUpdate, order)
	if !sameID(before.TableID, order.TableID) || order.Status == models.OrderCancelled {
		oc.events.table(c.Request.Context(), before.TableID)
	}
	if !sameID(before.TableID, order.TableID) {
		oc.events.table(c.Request.Context(), order.TableID)
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// parseOrderPatch turns a merge-patch body into an OrderPatch. Unknown keys
// are ignored; derived fields are refused.
func parseOrderPatch(raw map[string]json.RawMessage) (services.OrderPatch, error) {
	var p services.OrderPatch
	for key, value := range raw {
		var err error
		switch key {
		case "total", "vuelto":
			return p, fmt.Errorf("%s is derived and cannot be set", key)
		case "cliente_id":
			p.ClientID, err = decodeField[uint](key, value, false)
		case "mesero_id":
			p.WaiterID, err = decodeField[uint](key, value, false)
		case "mesa":
			p.TableID, err = decodeField[*uint](key, value, true)
		case "estado":
			p.Status, err = decodeField[string](key, value, false)
		case "metodo_pago":
			p.PaymentMethod, err = decodeField[*string](key, value, true)
		case "referencia_pago":
			p.PaymentReference, err = decodeField[*string](key, value, true)
		case "nota":
			p.Note, err = decodeField[*string](key, value, true)
		case "version":
			p.Version, err = decodeField[uint](key, value, false)
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

func decodeField[T any](key string, value json.RawMessage, nullable bool) (services.Field[T], error) {
	var v T
	if string(value) == "null" && !nullable {
		return services.Field[T]{}, fmt.Errorf("%s cannot be null", key)
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return services.Field[T]{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return services.Set(v), nil
}

// DeleteOrder -> remove an order with its line items and session links
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := oc.orders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	oc.events.send(kds.EventOrderUpdate, gin.H{"id": id, "deleted": true})
	oc.events.table(c.Request.Context(), order.TableID)
	c.Status(http.StatusNoContent)
}

// StartOrder -> open to in_progress
func (oc *OrderController) StartOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Start, "Order started")
}

// CloseOrder -> paid to closed
func (oc *OrderController) CloseOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Close, "Order closed")
}

// CancelOrder -> abandon an unpaid order and free its table
func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Cancel, "Order cancelled")
}

func (oc *OrderController) transition(c *gin.Context, fn func(context.Context, uint) (*models.Order, error), message string) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := fn(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	oc.events.send(kds.EventOrderUpdate, order)
	if order.Status == models.OrderCancelled {
		oc.events.table(c.Request.Context(), order.TableID)
	}
	utils.RespondJSON(c, http.StatusOK, message, order)
}
