package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

// Catalog is the read side of the reference data the order core depends on.
// Every method runs on the caller's transaction.
type Catalog interface {
	ClientExists(tx *gorm.DB, id uint) (bool, error)
	WaiterExists(tx *gorm.DB, id uint) (bool, error)
	ProductPrice(tx *gorm.DB, id uint) (decimal.Decimal, error)
	IncrementOrderCount(tx *gorm.DB, clientID uint) error
}

type gormCatalog struct{}

// NewCatalog returns a Catalog backed by the relational store.
func NewCatalog() Catalog {
	return gormCatalog{}
}

func exists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "catalog")
	}
	return count > 0, nil
}

func (gormCatalog) ClientExists(tx *gorm.DB, id uint) (bool, error) {
	return exists(tx, &models.Client{}, id)
}

func (gormCatalog) WaiterExists(tx *gorm.DB, id uint) (bool, error) {
	return exists(tx, &models.Waiter{}, id)
}

// ProductPrice returns the current sale price of a product.
func (gormCatalog) ProductPrice(tx *gorm.DB, id uint) (decimal.Decimal, error) {
	var product models.Product
	if err := tx.Select("id", "precio_venta").First(&product, id).Error; err != nil {
		return decimal.Zero, classify(err, "product")
	}
	return product.SalePrice, nil
}

func (gormCatalog) IncrementOrderCount(tx *gorm.DB, clientID uint) error {
	res := tx.Model(&models.Client{}).
		Where("id = ?", clientID).
		UpdateColumn("nro_ordenes", gorm.Expr("nro_ordenes + ?", 1))
	if res.Error != nil {
		return classify(res.Error, "client")
	}
	if res.RowsAffected == 0 {
		return notFound("client %d not found", clientID)
	}
	return nil
}
