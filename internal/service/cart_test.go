package service

import (
	"context"
	"testing"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestGetOrCreateCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	svc := newCartService(db)

	cart, created, err := svc.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, cart.Items)

	// second access returns the same cart
	again, created, err := svc.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	product := seedProduct(t, db, "Product", "10.00")
	cart := seedCart(t, db, user.ID)

	svc := newCartService(db)

	_, err := svc.AddItem(ctx, user.ID, cart.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := svc.AddItem(ctx, user.ID, cart.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	product := seedProduct(t, db, "Product", "10.00")
	cart := seedCart(t, db, user.ID)

	svc := newCartService(db)

	_, err := svc.AddItem(ctx, user.ID, cart.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.AddItem(ctx, user.ID, cart.ID, &dto.AddCartItemRequest{ProductID: 9999, Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCartHiddenFromOtherUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	cart := seedCart(t, db, owner.ID)

	svc := newCartService(db)

	_, err := svc.Get(ctx, other.ID, cart.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateAndRemoveItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	product := seedProduct(t, db, "Product", "10.00")
	cart := seedCart(t, db, user.ID)
	item := seedCartItem(t, db, cart.ID, product.ID, 1)

	svc := newCartService(db)

	updated, err := svc.UpdateItem(ctx, user.ID, cart.ID, item.ID, &dto.UpdateCartItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// writing the quantity the item already has is still a success
	same, err := svc.UpdateItem(ctx, user.ID, cart.ID, item.ID, &dto.UpdateCartItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, same.Quantity)

	_, err = svc.UpdateItem(ctx, user.ID, cart.ID, item.ID, &dto.UpdateCartItemRequest{Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, svc.RemoveItem(ctx, user.ID, cart.ID, item.ID))

	err = svc.RemoveItem(ctx, user.ID, cart.ID, item.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
