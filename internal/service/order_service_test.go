package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func orderFixture() (*fakeOrderRepo, *fakeProductRepo, *fakeUserRepo, OrderService) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo(
		domain.Product{ID: 10, Name: "mug", About: "ceramic mug", Price: 5},
		domain.Product{ID: 11, Name: "tshirt", About: "cotton tshirt", Price: 7},
	)
	users := newFakeUserRepo(domain.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	return orders, products, users, NewOrderService(orders, products, users)
}

func TestCreateOrderComputesTaxedTotal(t *testing.T) {
	ctx := context.Background()
	orders, _, _, svc := orderFixture()

	// two occurrences of product 10 and one of product 11:
	// (5 + 5 + 7) * 1.2 = 20.40
	order, err := svc.CreateOrder(ctx, 1, []int64{10, 10, 11})
	require.NoError(t, err)

	assert.Equal(t, 20.40, order.Total)
	assert.False(t, order.Payment)
	require.Len(t, orders.created, 1)
	assert.Equal(t, []int64{10, 10, 11}, orders.created[0].productIDs)
}

func TestCreateOrderRoundsToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	orders := newFakeOrderRepo()
	products := newFakeProductRepo(domain.Product{ID: 3, Name: "poster", About: "print", Price: 19.99})
	users := newFakeUserRepo(domain.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	svc := NewOrderService(orders, products, users)

	// 19.99 * 3 * 1.2 = 71.964 -> 71.96
	order, err := svc.CreateOrder(ctx, 1, []int64{3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 71.96, order.Total)
}

func TestCreateOrderRejectsEmptyInput(t *testing.T) {
	ctx := context.Background()
	orders, _, _, svc := orderFixture()

	_, err := svc.CreateOrder(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreateOrder(ctx, 0, []int64{10})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	assert.Empty(t, orders.created, "nothing may be written on invalid input")
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	ctx := context.Background()
	orders, _, _, svc := orderFixture()

	_, err := svc.CreateOrder(ctx, 1, []int64{10, 999})
	assert.ErrorIs(t, err, ErrUnknownProducts)
	assert.Empty(t, orders.created, "a partially valid order must not be persisted")
}

func TestCreateOrderRejectsUnknownUser(t *testing.T) {
	ctx := context.Background()
	orders, _, _, svc := orderFixture()

	_, err := svc.CreateOrder(ctx, 42, []int64{10})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, orders.created)
}

func TestCreateOrderSurfacesStorageFailure(t *testing.T) {
	ctx := context.Background()
	orders, _, _, svc := orderFixture()
	orders.err = errors.New("connection reset")

	_, err := svc.CreateOrder(ctx, 1, []int64{10})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownProducts)
}
