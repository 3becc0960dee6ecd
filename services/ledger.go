package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

// MoneyScale is the number of decimal places kept for prices, quantities
// and totals.
const MoneyScale = 2

// LineTotal returns unitPrice × quantity rounded half-up to MoneyScale.
func LineTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity).Round(MoneyScale)
}

// SumLineTotals is the authoritative order total for a set of line items.
func SumLineTotals(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total.Round(MoneyScale)
}

// Ledger owns the line items of orders. It never touches the order row;
// callers recompute the order total from TotalFor after each mutation.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

func validQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return invalid("quantity must be greater than zero")
	}
	if !quantity.Round(MoneyScale).IsPositive() {
		return invalid("quantity rounds to zero")
	}
	return nil
}

// Add creates the (order, product) line with the price snapshot unitPrice.
func (l *Ledger) Add(tx *gorm.DB, orderID, productID uint, quantity, unitPrice decimal.Decimal) (*models.OrderItem, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	if _, err := l.Get(tx, orderID, productID); err == nil {
		return nil, conflict("product %d is already on order %d", productID, orderID)
	} else if KindOf(err) != KindNotFound {
		return nil, err
	}

	price := unitPrice.Round(MoneyScale)
	qty := quantity.Round(MoneyScale)
	item := models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		UnitPrice: price,
		Quantity:  qty,
		LineTotal: LineTotal(price, qty),
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, classify(err, "line item")
	}
	return &item, nil
}

func (l *Ledger) Get(tx *gorm.DB, orderID, productID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := tx.Where("orden_id = ? AND producto_id = ?", orderID, productID).First(&item).Error
	if err != nil {
		return nil, classify(err, "line item")
	}
	return &item, nil
}

// Update changes the quantity of an existing line and recomputes its total
// from the captured unit price.
func (l *Ledger) Update(tx *gorm.DB, orderID, productID uint, quantity decimal.Decimal) (*models.OrderItem, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	item, err := l.Get(tx, orderID, productID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity.Round(MoneyScale)
	item.LineTotal = LineTotal(item.UnitPrice, item.Quantity)

	err = tx.Model(&models.OrderItem{}).
		Where("orden_id = ? AND producto_id = ?", orderID, productID).
		Updates(map[string]interface{}{
			"cantidad":             item.Quantity,
			"orden_producto_total": item.LineTotal,
		}).Error
	if err != nil {
		return nil, classify(err, "line item")
	}
	return item, nil
}

func (l *Ledger) Remove(tx *gorm.DB, orderID, productID uint) error {
	res := tx.Where("orden_id = ? AND producto_id = ?", orderID, productID).Delete(&models.OrderItem{})
	if res.Error != nil {
		return classify(res.Error, "line item")
	}
	if res.RowsAffected == 0 {
		return notFound("product %d is not on order %d", productID, orderID)
	}
	return nil
}

// RemoveAll deletes every line of an order.
func (l *Ledger) RemoveAll(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("orden_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return classify(err, "line item")
	}
	return nil
}

func (l *Ledger) Items(tx *gorm.DB, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := tx.Where("orden_id = ?", orderID).Order("producto_id").Find(&items).Error; err != nil {
		return nil, classify(err, "line item")
	}
	return items, nil
}

func (l *Ledger) TotalFor(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	items, err := l.Items(tx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumLineTotals(items), nil
}
