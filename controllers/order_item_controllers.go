package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type OrderItemController struct {
	orders *services.OrderService
	hub    *kds.Hub
}

func NewOrderItemController(orders *services.OrderService, hub *kds.Hub) *OrderItemController {
	return &OrderItemController{orders: orders, hub: hub}
}

type lineItemResponse struct {
	Item  *models.OrderItem `json:"orden_producto,omitempty"`
	Order *models.Order     `json:"orden"`
}

// GetAllOrderItems -> every line item of every order
func (ic *OrderItemController) GetAllOrderItems(c *gin.Context) {
	items, err := ic.orders.LineItems(c.Request.Context(), 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of order items", items)
}

// GetOrderItems -> line items of one order
func (ic *OrderItemController) GetOrderItems(c *gin.Context) {
	orderID, ok := parseID(c, "orden_id")
	if !ok {
		return
	}
	if _, err := ic.orders.Get(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	items, err := ic.orders.LineItems(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of order items", items)
}

// CreateOrderItem -> add a product to an order at its catalog price.
// producto_precio and orden_producto_total are accepted but not trusted.
func (ic *OrderItemController) CreateOrderItem(c *gin.Context) {
	var req struct {
		OrderID   uint                `json:"orden_id" binding:"required"`
		ProductID uint                `json:"producto_id" binding:"required"`
		Quantity  decimal.Decimal     `json:"cantidad" binding:"gt=0"`
		UnitPrice decimal.NullDecimal `json:"producto_precio"`
		LineTotal decimal.NullDecimal `json:"orden_producto_total"`
	}
	if !bindJSON(c, &req) {
		return
	}

	order, item, err := ic.orders.AddLineItem(c.Request.Context(), req.OrderID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ic.hub.Broadcast(kds.EventOrderUpdate, order)
	utils.RespondJSON(c, http.StatusCreated, "Order item added", lineItemResponse{Item: item, Order: order})
}

// UpdateOrderItem -> change the quantity of a line
func (ic *OrderItemController) UpdateOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "orden_id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "producto_id")
	if !ok {
		return
	}
	var req struct {
		Quantity decimal.Decimal `json:"cantidad" binding:"gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	order, item, err := ic.orders.UpdateLineItem(c.Request.Context(), orderID, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ic.hub.Broadcast(kds.EventOrderUpdate, order)
	utils.RespondJSON(c, http.StatusOK, "Order item updated", lineItemResponse{Item: item, Order: order})
}

func (ic *OrderItemController) DeleteOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "orden_id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "producto_id")
	if !ok {
		return
	}
	order, err := ic.orders.RemoveLineItem(c.Request.Context(), orderID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ic.hub.Broadcast(kds.EventOrderUpdate, order)
	c.Status(http.StatusNoContent)
}
