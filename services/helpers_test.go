package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/daie-pos/config"
	"github.com/yeremiapane/daie-pos/database"
	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixture is a migrated in-memory store with one category, client, waiter
// and a two-product menu.
type fixture struct {
	db       *gorm.DB
	uow      *UnitOfWork
	orders   *OrderService
	sessions *SessionService
	ratings  *RatingService
	catalog  *CatalogService
	tables   *TableService

	client  models.Client
	waiter  models.Waiter
	burger  models.Product
	soda    models.Product
	table5  models.Table
	table6  models.Table
	context context.Context
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	tracker := NewTableTracker()
	f := &fixture{
		db:       db,
		uow:      uow,
		orders:   NewOrderService(uow, NewCatalog(), tracker, NewLedger()),
		sessions: NewSessionService(uow),
		ratings:  NewRatingService(uow, NewCatalog()),
		catalog:  NewCatalogService(uow),
		tables:   NewTableService(uow, tracker),
		context:  context.Background(),
	}

	category := models.Category{Name: "Principales"}
	require.NoError(t, db.Create(&category).Error)
	f.burger = models.Product{Name: "Hamburguesa", SalePrice: decimal.RequireFromString("10.00"), CategoryID: category.ID}
	f.soda = models.Product{Name: "Gaseosa", SalePrice: decimal.RequireFromString("2.50"), CategoryID: category.ID}
	require.NoError(t, db.Create(&f.burger).Error)
	require.NoError(t, db.Create(&f.soda).Error)

	f.client = models.Client{Name: "Ana", ExternalID: "V-1"}
	f.waiter = models.Waiter{Name: "Luis"}
	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.waiter).Error)

	f.table5 = models.Table{Number: 5, Capacity: 4, State: models.TableFree, Version: 1}
	f.table6 = models.Table{Number: 6, Capacity: 2, State: models.TableFree, Version: 1}
	require.NoError(t, db.Create(&f.table5).Error)
	require.NoError(t, db.Create(&f.table6).Error)
	return f
}

func (f *fixture) openOrder(t *testing.T, table *uint) *models.Order {
	t.Helper()
	order, err := f.orders.Create(f.context, CreateOrderInput{ClientID: f.client.ID, WaiterID: f.waiter.ID, TableID: table})
	require.NoError(t, err)
	return order
}

func (f *fixture) table(t *testing.T, id uint) models.Table {
	t.Helper()
	var table models.Table
	require.NoError(t, f.db.First(&table, id).Error)
	return table
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
