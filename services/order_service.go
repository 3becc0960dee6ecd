package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/utils"
	"gorm.io/gorm"
)

// PaymentMethodCash is the only method for which a reference is generated
// when none is supplied.
const PaymentMethodCash = "cash"

// orderTransitions lists the status changes an order may go through.
var orderTransitions = map[string][]string{
	models.OrderOpen:       {models.OrderInProgress, models.OrderPaid, models.OrderCancelled},
	models.OrderInProgress: {models.OrderPaid, models.OrderCancelled},
	models.OrderPaid:       {models.OrderClosed},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type CreateOrderInput struct {
	ClientID uint
	WaiterID uint
	TableID  *uint
	Note     *string
}

type PaymentInput struct {
	Method    string
	Reference *string
	Tendered  decimal.Decimal
}

// Field is one merge-patch member: Set reports whether the key was present in
// the request, Value holds what was sent (possibly nil).
type Field[T any] struct {
	Set   bool
	Value T
}

// Set builds a present patch field.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// OrderPatch is a merge-patch on an order. Absent fields are left untouched.
type OrderPatch struct {
	ClientID         Field[uint]
	WaiterID         Field[uint]
	TableID          Field[*uint]
	Status           Field[string]
	PaymentMethod    Field[*string]
	PaymentReference Field[*string]
	Note             Field[*string]
	Version          Field[uint]
}

type OrderFilter struct {
	ClientID *uint
	TableID  *uint
}

// OrderService owns the order lifecycle: status, table binding, line items
// and payment settlement.
type OrderService struct {
	uow     *UnitOfWork
	catalog Catalog
	tables  *TableTracker
	ledger  *Ledger
}

func NewOrderService(uow *UnitOfWork, catalog Catalog, tables *TableTracker, ledger *Ledger) *OrderService {
	return &OrderService{
		uow:     uow,
		catalog: catalog,
		tables:  tables,
		ledger:  ledger,
	}
}

func loadOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.First(&order, id).Error; err != nil {
		return nil, classify(err, "order")
	}
	return &order, nil
}

// saveOrder applies changes guarded by the order version and reloads it.
func saveOrder(tx *gorm.DB, order *models.Order, changes map[string]interface{}) error {
	changes["version"] = order.Version + 1
	res := tx.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(changes)
	if res.Error != nil {
		return classify(res.Error, "order")
	}
	if res.RowsAffected == 0 {
		return conflict("order %d was modified concurrently", order.ID)
	}
	if err := tx.First(order, order.ID).Error; err != nil {
		return classify(err, "order")
	}
	return nil
}

func (s *OrderService) requireClient(tx *gorm.DB, id uint) error {
	ok, err := s.catalog.ClientExists(tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("client %d not found", id)
	}
	return nil
}

func (s *OrderService) requireWaiter(tx *gorm.DB, id uint) error {
	ok, err := s.catalog.WaiterExists(tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("waiter %d not found", id)
	}
	return nil
}

// Create opens an order and, when a table is given, seats it there in the
// same transaction.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.ClientID == 0 {
		return nil, invalid("cliente_id is required")
	}
	if in.WaiterID == 0 {
		return nil, invalid("mesero_id is required")
	}

	var order models.Order
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := s.requireClient(tx, in.ClientID); err != nil {
			return err
		}
		if err := s.requireWaiter(tx, in.WaiterID); err != nil {
			return err
		}

		order = models.Order{
			ClientID: in.ClientID,
			WaiterID: in.WaiterID,
			TableID:  in.TableID,
			Status:   models.OrderOpen,
			Total:    decimal.Zero,
			Note:     in.Note,
			Version:  1,
		}
		if err := tx.Create(&order).Error; err != nil {
			return classify(err, "order")
		}
		if in.TableID != nil {
			if _, err := s.tables.Assign(tx, *in.TableID, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"order_id": order.ID, "client_id": order.ClientID}).Info("order created")
	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.uow.Read(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("producto_id") }).
		First(&order, id).Error
	if err != nil {
		return nil, classify(err, "order")
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := s.uow.Read(ctx).Order("id")
	if filter.ClientID != nil {
		q = q.Where("cliente_id = ?", *filter.ClientID)
	}
	if filter.TableID != nil {
		q = q.Where("mesa = ?", *filter.TableID)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, classify(err, "order")
	}
	return orders, nil
}

// mutateLines runs a ledger mutation on an order that still accepts line
// changes and rewrites the order total from the ledger afterwards.
func (s *OrderService) mutateLines(ctx context.Context, orderID uint, fn func(tx *gorm.DB, order *models.Order) error) (*models.Order, error) {
	var order *models.Order
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if models.IsTerminal(order.Status) {
			return invalidState("order %d is %s and cannot change its products", order.ID, order.Status)
		}
		if err := fn(tx, order); err != nil {
			return err
		}

		total, err := s.ledger.TotalFor(tx, order.ID)
		if err != nil {
			return err
		}
		changes := map[string]interface{}{"total": total}
		if order.Status == models.OrderOpen {
			changes["estado"] = models.OrderInProgress
		}
		return saveOrder(tx, order, changes)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AddLineItem adds a product at its current catalog price.
func (s *OrderService) AddLineItem(ctx context.Context, orderID, productID uint, quantity decimal.Decimal) (*models.Order, *models.OrderItem, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, nil, err
	}
	var item *models.OrderItem
	order, err := s.mutateLines(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		price, err := s.catalog.ProductPrice(tx, productID)
		if err != nil {
			return err
		}
		item, err = s.ledger.Add(tx, order.ID, productID, quantity, price)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return order, item, nil
}

func (s *OrderService) UpdateLineItem(ctx context.Context, orderID, productID uint, quantity decimal.Decimal) (*models.Order, *models.OrderItem, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, nil, err
	}
	var item *models.OrderItem
	order, err := s.mutateLines(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		var err error
		item, err = s.ledger.Update(tx, order.ID, productID, quantity)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return order, item, nil
}

func (s *OrderService) RemoveLineItem(ctx context.Context, orderID, productID uint) (*models.Order, error) {
	return s.mutateLines(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		return s.ledger.Remove(tx, order.ID, productID)
	})
}

// LineItems lists the lines of one order, or of all orders when orderID is 0.
func (s *OrderService) LineItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	q := s.uow.Read(ctx).Order("orden_id, producto_id")
	if orderID != 0 {
		q = q.Where("orden_id = ?", orderID)
	}
	var items []models.OrderItem
	if err := q.Find(&items).Error; err != nil {
		return nil, classify(err, "line item")
	}
	return items, nil
}

// ApplyPayment settles an open order: it records the payment, computes the
// change due against the ledger total, counts the order for the client and
// frees the table the order holds.
func (s *OrderService) ApplyPayment(ctx context.Context, orderID uint, in PaymentInput) (*models.Order, error) {
	method := strings.TrimSpace(in.Method)
	if method == "" {
		return nil, invalid("metodo_pago is required")
	}
	if in.Tendered.IsNegative() {
		return nil, invalid("tendered amount cannot be negative")
	}

	var order *models.Order
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if !CanTransition(order.Status, models.OrderPaid) {
			return invalidState("order %d is %s and cannot be paid", order.ID, order.Status)
		}

		total, err := s.ledger.TotalFor(tx, order.ID)
		if err != nil {
			return err
		}
		change := in.Tendered.Round(MoneyScale).Sub(total)
		if change.IsNegative() {
			return &Error{
				Kind:    KindInsufficientPayment,
				Message: "tendered " + in.Tendered.StringFixed(MoneyScale) + " is less than total " + total.StringFixed(MoneyScale),
			}
		}

		reference := in.Reference
		if (reference == nil || *reference == "") && method == PaymentMethodCash {
			generated := "CSH-" + uuid.New().String()
			reference = &generated
		}

		err = saveOrder(tx, order, map[string]interface{}{
			"estado":          models.OrderPaid,
			"total":           total,
			"metodo_pago":     method,
			"referencia_pago": reference,
			"vuelto":          decimal.NewNullDecimal(change),
		})
		if err != nil {
			return err
		}
		if err := s.catalog.IncrementOrderCount(tx, order.ClientID); err != nil {
			return err
		}
		if order.TableID != nil {
			return s.tables.releaseIfHeld(tx, *order.TableID, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(MoneyScale),
		"method":   method,
	}).Info("order paid")
	return order, nil
}

// Start moves an Open order to InProgress.
func (s *OrderService) Start(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderInProgress)
}

// Close moves a Paid order to Closed.
func (s *OrderService) Close(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderClosed)
}

// Cancel abandons an unpaid order and frees its table.
func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderCancelled)
}

func (s *OrderService) transition(ctx context.Context, id uint, to string) (*models.Order, error) {
	var order *models.Order
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, id)
		if err != nil {
			return err
		}
		return s.applyStatus(tx, order, to)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// applyStatus performs a non-payment status transition on a loaded order.
func (s *OrderService) applyStatus(tx *gorm.DB, order *models.Order, to string) error {
	if !models.ValidOrderStatus(to) {
		return invalid("unknown order status %q", to)
	}
	if to == models.OrderPaid {
		return invalidState("order %d must be paid through the payment operation", order.ID)
	}
	if !CanTransition(order.Status, to) {
		return invalidState("order %d cannot go from %s to %s", order.ID, order.Status, to)
	}
	if err := saveOrder(tx, order, map[string]interface{}{"estado": to}); err != nil {
		return err
	}
	if to == models.OrderCancelled && order.TableID != nil {
		if err := s.tables.releaseIfHeld(tx, *order.TableID, order.ID); err != nil {
			return err
		}
	}
	utils.InfoLogger.WithFields(logrus.Fields{"order_id": order.ID, "status": to}).Info("order status changed")
	return nil
}

// Patch applies a merge-patch: only the fields present in p change.
func (s *OrderService) Patch(ctx context.Context, id uint, p OrderPatch) (*models.Order, error) {
	if p.ClientID.Set && p.ClientID.Value == 0 {
		return nil, invalid("cliente_id cannot be empty")
	}
	if p.WaiterID.Set && p.WaiterID.Value == 0 {
		return nil, invalid("mesero_id cannot be empty")
	}
	if p.Status.Set && !models.ValidOrderStatus(p.Status.Value) {
		return nil, invalid("unknown order status %q", p.Status.Value)
	}

	var order *models.Order
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, id)
		if err != nil {
			return err
		}
		if p.Version.Set && p.Version.Value != order.Version {
			return conflict("order %d is at version %d, not %d", order.ID, order.Version, p.Version.Value)
		}

		settled := models.IsSettled(order.Status)
		if settled && p.ClientID.Set && p.ClientID.Value != order.ClientID {
			return invalidState("order %d is %s and cannot change client", order.ID, order.Status)
		}
		if settled && (p.PaymentMethod.Set || p.PaymentReference.Set) {
			return invalidState("order %d is %s and its payment is final", order.ID, order.Status)
		}

		changes := map[string]interface{}{}
		if p.ClientID.Set {
			if err := s.requireClient(tx, p.ClientID.Value); err != nil {
				return err
			}
			changes["cliente_id"] = p.ClientID.Value
		}
		if p.WaiterID.Set {
			if err := s.requireWaiter(tx, p.WaiterID.Value); err != nil {
				return err
			}
			changes["mesero_id"] = p.WaiterID.Value
		}
		if p.PaymentMethod.Set {
			changes["metodo_pago"] = p.PaymentMethod.Value
		}
		if p.PaymentReference.Set {
			changes["referencia_pago"] = p.PaymentReference.Value
		}
		if p.Note.Set {
			changes["nota"] = p.Note.Value
		}
		if p.TableID.Set && !sameTable(order.TableID, p.TableID.Value) {
			if models.IsTerminal(order.Status) {
				return invalidState("order %d is %s and cannot change table", order.ID, order.Status)
			}
			if order.TableID != nil {
				if err := s.tables.releaseIfHeld(tx, *order.TableID, order.ID); err != nil {
					return err
				}
			}
			if p.TableID.Value != nil {
				if _, err := s.tables.Assign(tx, *p.TableID.Value, order.ID); err != nil {
					return err
				}
			}
			changes["mesa"] = p.TableID.Value
		}

		if len(changes) > 0 {
			if err := saveOrder(tx, order, changes); err != nil {
				return err
			}
		}
		if p.Status.Set && p.Status.Value != order.Status {
			return s.applyStatus(tx, order, p.Status.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func sameTable(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Delete removes an order with its line items and session links, and frees
// the table if the order still holds it.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(tx *gorm.DB) error {
		order, err := loadOrder(tx, id)
		if err != nil {
			return err
		}
		if err := s.ledger.RemoveAll(tx, order.ID); err != nil {
			return err
		}
		if err := tx.Where("orden_id = ?", order.ID).Delete(&models.SessionOrder{}).Error; err != nil {
			return classify(err, "session link")
		}
		if order.TableID != nil {
			if err := s.tables.releaseIfHeld(tx, *order.TableID, order.ID); err != nil {
				return err
			}
		}
		res := tx.Where("id = ? AND version = ?", order.ID, order.Version).Delete(&models.Order{})
		if res.Error != nil {
			return classify(res.Error, "order")
		}
		if res.RowsAffected == 0 {
			return conflict("order %d was modified concurrently", order.ID)
		}
		return nil
	})
}
