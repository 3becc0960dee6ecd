package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/daie-pos/models"
)

func TestSessionService_AttachDetach(t *testing.T) {
	f := newFixture(t)
	session, err := f.sessions.Create(f.context, models.SessionOpen)
	require.NoError(t, err)
	other, err := f.sessions.Create(f.context, "")
	require.NoError(t, err)
	order := f.openOrder(t, nil)

	_, err = f.sessions.Attach(f.context, session.ID, order.ID)
	require.NoError(t, err)

	_, err = f.sessions.Attach(f.context, other.ID, order.ID)
	assert.Equal(t, KindConflict, KindOf(err))
	_, err = f.sessions.Attach(f.context, session.ID, order.ID)
	assert.Equal(t, KindConflict, KindOf(err))
	_, err = f.sessions.Attach(f.context, session.ID, 999)
	assert.Equal(t, KindNotFound, KindOf(err))

	ids, err := f.sessions.OrdersOf(f.context, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{order.ID}, ids)

	require.NoError(t, f.sessions.Detach(f.context, session.ID, order.ID))
	assert.Equal(t, KindNotFound, KindOf(f.sessions.Detach(f.context, session.ID, order.ID)))

	_, err = f.orders.Get(f.context, order.ID)
	assert.NoError(t, err, "detach keeps the order")
	_, err = f.sessions.Get(f.context, session.ID)
	assert.NoError(t, err, "detach keeps the session")

	_, err = f.sessions.Attach(f.context, other.ID, order.ID)
	assert.NoError(t, err, "a detached order can join another session")
}

func TestSessionService_CreateOnlyOpen(t *testing.T) {
	f := newFixture(t)
	_, err := f.sessions.Create(f.context, models.SessionClosed)
	assert.Equal(t, KindInvalid, KindOf(err))
}

func TestSessionService_CloseRefusesUnsettledOrders(t *testing.T) {
	f := newFixture(t)
	session, err := f.sessions.Create(f.context, "")
	require.NoError(t, err)
	paid := f.openOrder(t, nil)
	pending := f.openOrder(t, nil)
	for _, o := range []*models.Order{paid, pending} {
		_, err = f.sessions.Attach(f.context, session.ID, o.ID)
		require.NoError(t, err)
	}
	_, err = f.orders.ApplyPayment(f.context, paid.ID, PaymentInput{Method: PaymentMethodCash, Tendered: dec("0")})
	require.NoError(t, err)

	_, err = f.sessions.Close(f.context, session.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.ErrorContains(t, err, "unsettled")

	got, err := f.orders.Get(f.context, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, got.Status, "a refused close must not touch members")

	_, err = f.orders.Cancel(f.context, pending.ID)
	require.NoError(t, err)

	closed, err := f.sessions.SetStatus(f.context, session.ID, models.SessionClosed)
	require.NoError(t, err)
	assert.Equal(t, models.SessionClosed, closed.Status)

	got, err = f.orders.Get(f.context, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderClosed, got.Status)
	got, err = f.orders.Get(f.context, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.Status)

	_, err = f.sessions.Close(f.context, session.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
	_, err = f.sessions.SetStatus(f.context, session.ID, models.SessionOpen)
	assert.Equal(t, KindInvalidState, KindOf(err))
	_, err = f.sessions.Attach(f.context, session.ID, f.openOrder(t, nil).ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Equal(t, KindInvalidState, KindOf(f.sessions.Detach(f.context, session.ID, paid.ID)))

	ids, err := f.sessions.OrdersOf(f.context, session.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{paid.ID, pending.ID}, ids)
}

func TestSessionService_DeleteKeepsOrders(t *testing.T) {
	f := newFixture(t)
	session, err := f.sessions.Create(f.context, "")
	require.NoError(t, err)
	order := f.openOrder(t, nil)
	_, err = f.sessions.Attach(f.context, session.ID, order.ID)
	require.NoError(t, err)

	require.NoError(t, f.sessions.Delete(f.context, session.ID))

	_, err = f.sessions.Get(f.context, session.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	_, err = f.orders.Get(f.context, order.ID)
	assert.NoError(t, err)

	var links int64
	f.db.Model(&models.SessionOrder{}).Count(&links)
	assert.Zero(t, links)
}

func TestSessionService_Receipt(t *testing.T) {
	f := newFixture(t)
	session, err := f.sessions.Create(f.context, "")
	require.NoError(t, err)

	first := f.openOrder(t, &f.table5.ID)
	_, _, err = f.orders.AddLineItem(f.context, first.ID, f.burger.ID, dec("2"))
	require.NoError(t, err)
	_, _, err = f.orders.AddLineItem(f.context, first.ID, f.soda.ID, dec("1"))
	require.NoError(t, err)

	second := f.openOrder(t, nil)
	_, _, err = f.orders.AddLineItem(f.context, second.ID, f.soda.ID, dec("2"))
	require.NoError(t, err)

	dropped := f.openOrder(t, nil)
	_, _, err = f.orders.AddLineItem(f.context, dropped.ID, f.burger.ID, dec("5"))
	require.NoError(t, err)
	_, err = f.orders.Cancel(f.context, dropped.ID)
	require.NoError(t, err)

	for _, o := range []*models.Order{first, second, dropped} {
		_, err = f.sessions.Attach(f.context, session.ID, o.ID)
		require.NoError(t, err)
	}

	receipt, err := f.sessions.Receipt(f.context, session.ID)
	require.NoError(t, err)
	require.Len(t, receipt.Orders, 3)
	assert.True(t, dec("22.50").Equal(receipt.Orders[0].Total))
	assert.Equal(t, "Hamburguesa", receipt.Orders[0].Lines[0].ProductName)
	assert.True(t, dec("5.00").Equal(receipt.Orders[1].Total))
	assert.True(t, dec("27.50").Equal(receipt.GrandTotal), "cancelled orders are not billed")

	var buf bytes.Buffer
	require.NoError(t, WriteReceiptPDF(&buf, receipt))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	_, err = f.sessions.Receipt(f.context, 999)
	assert.Equal(t, KindNotFound, KindOf(err))
}
