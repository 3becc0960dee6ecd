package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	SalePrice   decimal.Decimal     `gorm:"column:precio_venta;type:decimal(10,2);not null" json:"precio_venta"`
	SaleTax     decimal.NullDecimal `gorm:"column:impuesto_venta;type:decimal(10,2)" json:"impuesto_venta"`
	PurchaseTax decimal.NullDecimal `gorm:"column:impuesto_compra;type:decimal(10,2)" json:"impuesto_compra"`
	CategoryID  uint                `gorm:"column:categoria_id;not null;index" json:"categoria_id"`
	Reference   *string             `gorm:"column:referencia;type:varchar(100)" json:"referencia"`
	ImageLink   *string             `gorm:"column:link_imagen;type:varchar(255)" json:"link_imagen"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "productos"
}
