package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

type ReceiptLine struct {
	ProductID   uint            `json:"producto_id"`
	ProductName string          `json:"nombre"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"producto_precio"`
	LineTotal   decimal.Decimal `json:"orden_producto_total"`
}

type ReceiptOrder struct {
	OrderID       uint                `json:"orden_id"`
	Status        string              `json:"estado"`
	TableID       *uint               `json:"mesa"`
	PaymentMethod *string             `json:"metodo_pago"`
	ChangeDue     decimal.NullDecimal `json:"vuelto"`
	Lines         []ReceiptLine       `json:"productos"`
	Total         decimal.Decimal     `json:"total"`
}

// SessionReceipt consolidates every order of a session into one check.
type SessionReceipt struct {
	SessionID  uint            `json:"sesion_id"`
	Status     string          `json:"estado"`
	OpenedAt   time.Time       `json:"fecha"`
	Orders     []ReceiptOrder  `json:"ordenes"`
	GrandTotal decimal.Decimal `json:"total"`
}

// Receipt builds the consolidated receipt of a session. Order totals are
// recomputed from their lines, not read from the cached column.
func (s *SessionService) Receipt(ctx context.Context, id uint) (*SessionReceipt, error) {
	db := s.uow.Read(ctx)
	session, err := loadSession(db, id)
	if err != nil {
		return nil, err
	}
	ids, err := memberIDs(db, session.ID)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if len(ids) > 0 {
		err = db.Preload("LineItems", func(q *gorm.DB) *gorm.DB { return q.Order("producto_id") }).
			Preload("LineItems.Product").
			Where("id IN ?", ids).
			Order("id").
			Find(&orders).Error
		if err != nil {
			return nil, classify(err, "order")
		}
	}

	receipt := &SessionReceipt{
		SessionID:  session.ID,
		Status:     session.Status,
		OpenedAt:   session.CreatedAt,
		Orders:     make([]ReceiptOrder, 0, len(orders)),
		GrandTotal: decimal.Zero,
	}
	for _, o := range orders {
		ro := ReceiptOrder{
			OrderID:       o.ID,
			Status:        o.Status,
			TableID:       o.TableID,
			PaymentMethod: o.PaymentMethod,
			ChangeDue:     o.ChangeDue,
			Lines:         make([]ReceiptLine, 0, len(o.LineItems)),
			Total:         SumLineTotals(o.LineItems),
		}
		for _, item := range o.LineItems {
			line := ReceiptLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.LineTotal,
			}
			if item.Product != nil {
				line.ProductName = item.Product.Name
			}
			ro.Lines = append(ro.Lines, line)
		}
		if o.Status != models.OrderCancelled {
			receipt.GrandTotal = receipt.GrandTotal.Add(ro.Total)
		}
		receipt.Orders = append(receipt.Orders, ro)
	}
	return receipt, nil
}
