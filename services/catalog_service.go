package services

import (
	"context"

	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

// Repository is flat CRUD over one reference table. Hooks run inside the
// write transaction.
type Repository[T any] struct {
	uow  *UnitOfWork
	what string
	// check validates a row before it is created or saved.
	check func(tx *gorm.DB, row *T) error
	// inUse rejects deleting a row that still has dependants.
	inUse func(tx *gorm.DB, id uint) error
}

func (r *Repository[T]) List(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	rows := []T{}
	if err := r.uow.Read(ctx).Scopes(scopes...).Order("id").Find(&rows).Error; err != nil {
		return nil, classify(err, r.what)
	}
	return rows, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.uow.Read(ctx).First(&row, id).Error; err != nil {
		return nil, classify(err, r.what)
	}
	return &row, nil
}

func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	return r.uow.Do(ctx, func(tx *gorm.DB) error {
		if r.check != nil {
			if err := r.check(tx, row); err != nil {
				return err
			}
		}
		return classify(tx.Create(row).Error, r.what)
	})
}

// Update loads the row, lets apply overwrite its fields and saves it back.
// Columns named in keep are left as stored.
func (r *Repository[T]) Update(ctx context.Context, id uint, apply func(row *T), keep ...string) (*T, error) {
	var row T
	err := r.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return classify(err, r.what)
		}
		apply(&row)
		if r.check != nil {
			if err := r.check(tx, &row); err != nil {
				return err
			}
		}
		if err := tx.Omit(keep...).Save(&row).Error; err != nil {
			return classify(err, r.what)
		}
		if len(keep) > 0 {
			return classify(tx.First(&row, id).Error, r.what)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	return r.uow.Do(ctx, func(tx *gorm.DB) error {
		var row T
		if err := tx.First(&row, id).Error; err != nil {
			return classify(err, r.what)
		}
		if r.inUse != nil {
			if err := r.inUse(tx, id); err != nil {
				return err
			}
		}
		return classify(tx.Delete(&row).Error, r.what)
	})
}

func referenced(tx *gorm.DB, model interface{}, column string, id uint) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, classify(err, "reference")
	}
	return n > 0, nil
}

// CatalogService holds the reference data the order flow looks up.
type CatalogService struct {
	Categories *Repository[models.Category]
	Products   *Repository[models.Product]
	Clients    *Repository[models.Client]
	Waiters    *Repository[models.Waiter]
	Tables     *Repository[models.Table]
}

func NewCatalogService(uow *UnitOfWork) *CatalogService {
	return &CatalogService{
		Categories: &Repository[models.Category]{
			uow:  uow,
			what: "category",
			check: func(tx *gorm.DB, c *models.Category) error {
				if c.Name == "" {
					return invalid("nombre is required")
				}
				return nil
			},
			inUse: func(tx *gorm.DB, id uint) error {
				used, err := referenced(tx, &models.Product{}, "categoria_id", id)
				if err == nil && used {
					err = conflict("category %d still has products", id)
				}
				return err
			},
		},
		Products: &Repository[models.Product]{
			uow:  uow,
			what: "product",
			check: func(tx *gorm.DB, p *models.Product) error {
				if p.Name == "" {
					return invalid("nombre is required")
				}
				if p.SalePrice.IsNegative() {
					return invalid("precio_venta must not be negative")
				}
				p.SalePrice = p.SalePrice.Round(MoneyScale)
				ok, err := exists(tx, &models.Category{}, p.CategoryID)
				if err != nil {
					return err
				}
				if !ok {
					return notFound("category %d not found", p.CategoryID)
				}
				return nil
			},
			inUse: func(tx *gorm.DB, id uint) error {
				used, err := referenced(tx, &models.OrderItem{}, "producto_id", id)
				if err == nil && used {
					err = conflict("product %d is on existing orders", id)
				}
				return err
			},
		},
		Clients: &Repository[models.Client]{
			uow:  uow,
			what: "client",
			check: func(tx *gorm.DB, c *models.Client) error {
				if c.Name == "" || c.ExternalID == "" {
					return invalid("nombre and cedula are required")
				}
				if c.OrderCount < 0 {
					return invalid("nro_ordenes must not be negative")
				}
				return nil
			},
			inUse: func(tx *gorm.DB, id uint) error {
				used, err := referenced(tx, &models.Order{}, "cliente_id", id)
				if err == nil && !used {
					used, err = referenced(tx, &models.Rating{}, "cliente_id", id)
				}
				if err == nil && used {
					err = conflict("client %d has orders or ratings", id)
				}
				return err
			},
		},
		Waiters: &Repository[models.Waiter]{
			uow:  uow,
			what: "waiter",
			check: func(tx *gorm.DB, w *models.Waiter) error {
				if w.Name == "" {
					return invalid("nombre is required")
				}
				return nil
			},
			inUse: func(tx *gorm.DB, id uint) error {
				used, err := referenced(tx, &models.Order{}, "mesero_id", id)
				if err == nil && used {
					err = conflict("waiter %d has orders", id)
				}
				return err
			},
		},
		Tables: &Repository[models.Table]{
			uow:  uow,
			what: "table",
			check: func(tx *gorm.DB, t *models.Table) error {
				if t.State == "" {
					t.State = models.TableFree
				}
				if !models.ValidTableState(t.State) {
					return invalid("unknown table state %q", t.State)
				}
				if t.Capacity < 0 {
					return invalid("capacidad must not be negative")
				}
				if t.Version == 0 {
					t.Version = 1
				}
				return nil
			},
			inUse: func(tx *gorm.DB, id uint) error {
				var t models.Table
				if err := tx.First(&t, id).Error; err != nil {
					return classify(err, "table")
				}
				if t.State == models.TableOccupied {
					return conflict("table %d is occupied", id)
				}
				return nil
			},
		},
	}
}

// TablesInState filters a table listing by state.
func TablesInState(state string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if state == "" {
			return db
		}
		return db.Where("estado = ?", state)
	}
}
