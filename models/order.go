package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderOpen       = "open"
	OrderInProgress = "in_progress"
	OrderPaid       = "paid"
	OrderClosed     = "closed"
	OrderCancelled  = "cancelled"
)

// Order is a single customer check. Total is a cache of the sum of its line
// items and is rewritten after every ledger mutation.
type Order struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	ClientID         uint                `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	WaiterID         uint                `gorm:"column:mesero_id;not null;index" json:"mesero_id"`
	TableID          *uint               `gorm:"column:mesa;index" json:"mesa"`
	Status           string              `gorm:"column:estado;type:varchar(20);not null" json:"estado"`
	Total            decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod    *string             `gorm:"column:metodo_pago;type:varchar(20)" json:"metodo_pago"`
	PaymentReference *string             `gorm:"column:referencia_pago;type:varchar(100)" json:"referencia_pago"`
	ChangeDue        decimal.NullDecimal `gorm:"column:vuelto;type:decimal(10,2)" json:"vuelto"`
	Note             *string             `gorm:"column:nota;type:text" json:"nota"`
	Version          uint                `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time           `gorm:"column:fecha;not null" json:"fecha"`
	UpdatedAt        time.Time           `gorm:"not null" json:"updated_at"`
	LineItems        []OrderItem         `gorm:"foreignKey:OrderID" json:"productos,omitempty"`
}

func (Order) TableName() string {
	return "ordenes"
}

// IsTerminal reports whether line items can no longer change on an order in
// the given status.
func IsTerminal(status string) bool {
	switch status {
	case OrderPaid, OrderClosed, OrderCancelled:
		return true
	}
	return false
}

// IsSettled reports whether the order has been paid, so its client and
// payment details are final.
func IsSettled(status string) bool {
	return status == OrderPaid || status == OrderClosed
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderOpen, OrderInProgress, OrderPaid, OrderClosed, OrderCancelled:
		return true
	}
	return false
}
