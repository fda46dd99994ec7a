package services

import (
	"context"
	"testing"

	"foodshare/entity"
	"foodshare/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, f *orderFixture) *entity.Order {
	t.Helper()
	f.fill(t)
	o, err := f.orders.Checkout(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	return o
}

func TestOrderLifecycle(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	o := placeOrder(t, f)
	assert.Equal(t, "12.50", o.Amount.StringFixed(2))

	o, err := f.orders.MarkReady(ctx, o.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReady, o.Status)

	ready := f.notifier.to(notify.OrderReady)
	require.Len(t, ready, 1)
	assert.Equal(t, "buyer@test.io", ready[0].recipient)
	assert.Equal(t, "Noodle Bar", ready[0].fields["restaurantName"])

	o, err = f.orders.MarkCollected(ctx, o.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCollected, o.Status)

	// collected แล้วยกเลิกไม่ได้
	_, err = f.orders.Cancel(ctx, o.ID, f.buyer.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, ErrConflict)

	saved, err := f.store.Orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCollected, saved.Status)

	assert.Equal(t, []entity.OrderStatus{
		entity.OrderPlaced, entity.OrderReady, entity.OrderCollected,
	}, f.events.statuses())
}

func TestTransitionsRequireOwner(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	o := placeOrder(t, f)
	stranger := seedUser(t, f.store, "x@test.io", "Xen")

	_, err := f.orders.MarkReady(ctx, o.ID, f.buyer.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.orders.MarkReady(ctx, o.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.orders.MarkCollected(ctx, o.ID, f.buyer.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.orders.Cancel(ctx, o.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	saved, err := f.store.Orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPlaced, saved.Status)
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newOrderFixture(t, true)
	_, err := f.orders.MarkReady(context.Background(), 12345, f.seller.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReTransitionRejected(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	o := placeOrder(t, f)

	_, err := f.orders.MarkCollected(ctx, o.ID, f.seller.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.orders.MarkReady(ctx, o.ID, f.seller.ID)
	require.NoError(t, err)
	_, err = f.orders.MarkReady(ctx, o.ID, f.seller.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, f.notifier.to(notify.OrderReady), 1)
}

func TestBuyerCancelKeepsOrderAndNotifiesSeller(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	o := placeOrder(t, f)

	o, err := f.orders.Cancel(ctx, o.ID, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)

	saved, err := f.store.Orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, saved.Status)
	assert.Len(t, saved.Items, 2)

	mails := f.notifier.to(notify.OrderCancelledByBuyer)
	require.Len(t, mails, 1)
	assert.Equal(t, "seller@test.io", mails[0].recipient)
	assert.Equal(t, "Bea Test", mails[0].fields["buyerName"])
	assert.Empty(t, f.notifier.to(notify.OrderCancelledBySeller))

	_, err = f.orders.Cancel(ctx, o.ID, f.buyer.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSellerCancelReadyOrderNotifiesBuyer(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	o := placeOrder(t, f)
	_, err := f.orders.MarkReady(ctx, o.ID, f.seller.ID)
	require.NoError(t, err)

	_, err = f.orders.Cancel(ctx, o.ID, f.seller.ID)
	require.NoError(t, err)

	mails := f.notifier.to(notify.OrderCancelledBySeller)
	require.Len(t, mails, 1)
	assert.Equal(t, "buyer@test.io", mails[0].recipient)
	assert.Equal(t, "Noodle Bar", mails[0].fields["restaurantName"])
}
