package models

import "github.com/shopspring/decimal"

// OrderItem is one product line on an order, keyed by (order, product).
// UnitPrice is the catalog price captured when the line was added.
type OrderItem struct {
	OrderID   uint            `gorm:"column:orden_id;primaryKey;autoIncrement:false" json:"orden_id"`
	ProductID uint            `gorm:"column:producto_id;primaryKey;autoIncrement:false" json:"producto_id"`
	UnitPrice decimal.Decimal `gorm:"column:producto_precio;type:decimal(10,2);not null" json:"producto_precio"`
	Quantity  decimal.Decimal `gorm:"column:cantidad;type:decimal(10,2);not null" json:"cantidad"`
	LineTotal decimal.Decimal `gorm:"column:orden_producto_total;type:decimal(10,2);not null" json:"orden_producto_total"`
	Product   *Product        `gorm:"foreignKey:ProductID;references:ID" json:"producto,omitempty"`
}

func (OrderItem) TableName() string {
	return "ordenes_productos"
}
