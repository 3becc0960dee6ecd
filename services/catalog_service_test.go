package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/daie-pos/models"
)

func TestCatalogService_ProductNeedsCategory(t *testing.T) {
	f := newFixture(t)

	p := models.Product{Name: "Sopa", SalePrice: dec("4.555"), CategoryID: 999}
	assert.Equal(t, KindNotFound, KindOf(f.catalog.Products.Create(f.context, &p)))

	p.CategoryID = f.burger.CategoryID
	require.NoError(t, f.catalog.Products.Create(f.context, &p))
	assert.True(t, dec("4.56").Equal(p.SalePrice))

	updated, err := f.catalog.Products.Update(f.context, p.ID, func(row *models.Product) {
		row.SalePrice = dec("5")
	})
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(updated.SalePrice))
	assert.Equal(t, "Sopa", updated.Name)
}

func TestCatalogService_DeleteReferencedConflicts(t *testing.T) {
	f := newFixture(t)
	order := f.openOrder(t, &f.table5.ID)
	_, _, err := f.orders.AddLineItem(f.context, order.ID, f.burger.ID, dec("1"))
	require.NoError(t, err)

	assert.Equal(t, KindConflict, KindOf(f.catalog.Categories.Delete(f.context, f.burger.CategoryID)))
	assert.Equal(t, KindConflict, KindOf(f.catalog.Products.Delete(f.context, f.burger.ID)))
	assert.Equal(t, KindConflict, KindOf(f.catalog.Clients.Delete(f.context, f.client.ID)))
	assert.Equal(t, KindConflict, KindOf(f.catalog.Waiters.Delete(f.context, f.waiter.ID)))
	assert.Equal(t, KindConflict, KindOf(f.catalog.Tables.Delete(f.context, f.table5.ID)))

	require.NoError(t, f.catalog.Products.Delete(f.context, f.soda.ID))
	require.NoError(t, f.catalog.Tables.Delete(f.context, f.table6.ID))
	assert.Equal(t, KindNotFound, KindOf(f.catalog.Tables.Delete(f.context, f.table6.ID)))
}

func TestCatalogService_TableDefaultsAndFilter(t *testing.T) {
	f := newFixture(t)

	table := models.Table{Number: 7, Capacity: 2}
	require.NoError(t, f.catalog.Tables.Create(f.context, &table))
	assert.Equal(t, models.TableFree, table.State)

	bad := models.Table{Number: 8, State: "broken"}
	assert.Equal(t, KindInvalid, KindOf(f.catalog.Tables.Create(f.context, &bad)))

	f.openOrder(t, &f.table5.ID)
	occupied, err := f.catalog.Tables.List(f.context, TablesInState(models.TableOccupied))
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, f.table5.ID, occupied[0].ID)

	all, err := f.catalog.Tables.List(f.context, TablesInState(""))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTableService_SetState(t *testing.T) {
	f := newFixture(t)
	order := f.openOrder(t, &f.table5.ID)

	_, err := f.tables.SetState(f.context, f.table5.ID, "dirty")
	assert.Equal(t, KindInvalid, KindOf(err))

	table, err := f.tables.SetState(f.context, f.table5.ID, models.TableFree)
	require.NoError(t, err)
	assert.Nil(t, table.CurrentOrderID)

	// The order no longer holds the table, so paying it leaves the table alone.
	_, err = f.tables.SetState(f.context, f.table5.ID, models.TableReserved)
	require.NoError(t, err)
	_, err = f.orders.ApplyPayment(f.context, order.ID, PaymentInput{Method: PaymentMethodCash, Tendered: dec("0")})
	require.NoError(t, err)
	assert.Equal(t, models.TableReserved, f.table(t, f.table5.ID).State)
}
