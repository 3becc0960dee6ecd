package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type PaymentController struct {
	orders *services.OrderService
	events floorEvents
}

func NewPaymentController(orders *services.OrderService, catalog *services.CatalogService, hub *kds.Hub) *PaymentController {
	return &PaymentController{orders: orders, events: floorEvents{tables: catalog.Tables, hub: hub}}
}

// PayOrder -> settle an order and free its table
func (pc *PaymentController) PayOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Method    string          `json:"metodo_pago" binding:"required,max=20"`
		Reference *string         `json:"referencia_pago" binding:"omitempty,max=100"`
		Tendered  decimal.Decimal `json:"monto_recibido" binding:"gte=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	order, err := pc.orders.ApplyPayment(c.Request.Context(), id, services.PaymentInput{
		Method:    req.Method,
		Reference: req.Reference,
		Tendered:  req.Tendered,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pc.events.send(kds.EventOrderPaid, order)
	pc.events.table(c.Request.Context(), order.TableID)
	utils.RespondJSON(c, http.StatusOK, "Payment recorded", order)
}
