package services

import (
	"context"
	"testing"

	"foodshare/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItemAddRoundsPriceAndTags(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, store, "owner@test.io", "Olu")
	rest := seedRestaurant(t, store, owner, "Curry House", true)
	svc := NewFoodItemService(store)

	item, err := svc.Add(ctx, owner.ID, AddFoodItemIn{
		Name:         " 'Korma' ",
		Price:        decimal.RequireFromString("7.257"),
		Restrictions: []string{"Vegan", "halal", "vegan"},
		Picture:      "korma.JPG",
		InMenu:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Korma", item.Name)
	assert.Equal(t, "7.26", item.Price.StringFixed(2))
	assert.Equal(t, []string{"halal", "vegan"}, item.DietaryRestrictions())
	assert.Equal(t, rest.ID, item.RestaurantID)

	_, err = svc.Add(ctx, owner.ID, AddFoodItemIn{Name: "Free", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Add(ctx, owner.ID, AddFoodItemIn{Name: "Doc", Price: decimal.Zero, Picture: "menu.pdf"})
	assert.ErrorIs(t, err, ErrValidation)

	noShop := seedUser(t, store, "noshop@test.io", "Nia")
	_, err = svc.Add(ctx, noShop.ID, AddFoodItemIn{Name: "X", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoodItemOwnerOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, store, "owner@test.io", "Olu")
	other := seedUser(t, store, "other@test.io", "Oti")
	item := seedItem(t, store, seedRestaurant(t, store, owner, "Curry House", true), "Korma", "7.00")
	seedRestaurant(t, store, other, "Rival", true)
	svc := NewFoodItemService(store)

	name := "Stolen"
	_, err := svc.Edit(ctx, other.ID, item.ID, entity.FoodItemUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.SetInMenu(ctx, other.ID, item.ID, false)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, item.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, 999), ErrNotFound)
}

func TestFoodItemEdit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, store, "owner@test.io", "Olu")
	item := seedItem(t, store, seedRestaurant(t, store, owner, "Curry House", true), "Korma", "7.00")
	svc := NewFoodItemService(store)

	price := decimal.RequireFromString("8.499")
	tags := []string{"gluten free"}
	got, err := svc.Edit(ctx, owner.ID, item.ID, entity.FoodItemUpdate{Price: &price, Restrictions: &tags})
	require.NoError(t, err)
	assert.Equal(t, "8.50", got.Price.StringFixed(2))
	assert.Equal(t, []string{"gluten free"}, got.DietaryRestrictions())
	assert.Equal(t, "Korma", got.Name)

	neg := decimal.RequireFromString("-0.01")
	_, err = svc.Edit(ctx, owner.ID, item.ID, entity.FoodItemUpdate{Price: &neg})
	assert.ErrorIs(t, err, ErrValidation)

	got, err = svc.SetInMenu(ctx, owner.ID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, got.InMenu)

	all, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFoodItemDeleteRemovesFromCarts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, store, "owner@test.io", "Olu")
	buyer := seedUser(t, store, "buyer@test.io", "Bea")
	item := seedItem(t, store, seedRestaurant(t, store, owner, "Curry House", true), "Korma", "7.00")
	carts := NewCartService(store)
	require.NoError(t, carts.Increment(ctx, buyer.ID, item.ID))

	require.NoError(t, NewFoodItemService(store).Delete(ctx, owner.ID, item.ID))

	lines, err := carts.Fetch(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	_, err = store.FoodItems.FindByID(ctx, item.ID)
	assert.Error(t, err)
}
