package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
)

func TestCartStore_CreateCartEvictsCustomerLookup(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	customer := env.seedCustomer(t, "cart-create@example.com")

	// The miss is cached: a later direct insert must stay invisible.
	cart, err := env.Carts.GetCartByCustomerID(ctx, customer.CustomerID)
	require.NoError(t, err)
	require.Nil(t, cart)

	created, err := env.Carts.CreateCart(ctx, &models.Cart{CustomerID: customer.CustomerID})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.CartID)

	cart, err = env.Carts.GetCartByCustomerID(ctx, customer.CustomerID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Equal(t, created.CartID, cart.CartID)
}

func TestCartStore_GetCartItemsIsReadThrough(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	customer := env.seedCustomer(t, "cart-read@example.com")
	category := env.seedCategory(t, "Books")
	product := env.seedProduct(t, category.CategoryID, "Novel", 9.99, 5)
	cart := env.seedCart(t, customer.CustomerID)

	items, err := env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	require.Empty(t, items)

	// Insert behind the store's back; the cached list must keep serving.
	require.NoError(t, env.DB.Create(&models.CartItem{
		CartID:    cart.CartID,
		ProductID: product.ProductID,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	}).Error)

	items, err = env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	require.Empty(t, items)

	// A store-level write drops the list and the next read is fresh.
	_, err = env.Carts.AddCartItem(ctx, &models.CartItem{
		CartID:    cart.CartID,
		ProductID: product.ProductID,
		Quantity:  2,
		AddedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	items, err = env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestCartStore_UpdateCartItemQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	customer := env.seedCustomer(t, "cart-update@example.com")
	category := env.seedCategory(t, "Games")
	product := env.seedProduct(t, category.CategoryID, "Chess", 19.99, 3)
	cart := env.seedCart(t, customer.CustomerID)

	item, err := env.Carts.AddCartItem(ctx, &models.CartItem{
		CartID:    cart.CartID,
		ProductID: product.ProductID,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	got, err := env.Carts.GetCartItem(ctx, item.CartItemID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Quantity)

	require.NoError(t, env.Carts.UpdateCartItemQuantity(ctx, item.CartItemID, 4))

	got, err = env.Carts.GetCartItem(ctx, item.CartItemID)
	require.NoError(t, err)
	require.Equal(t, 4, got.Quantity)
}

func TestCartStore_UpdateMissingItem(t *testing.T) {
	env := newTestEnv(t)

	err := env.Carts.UpdateCartItemQuantity(ctxb(), uuid.New(), 2)
	require.Error(t, err)
	require.True(t, IsNotFound(err))

	var ue *UpdateError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "cart item", ue.Entity)
}

func TestCartStore_RemoveCartItemEvictsWithoutPopulating(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	customer := env.seedCustomer(t, "cart-remove@example.com")
	category := env.seedCategory(t, "Music")
	product := env.seedProduct(t, category.CategoryID, "Record", 24.99, 7)
	cart := env.seedCart(t, customer.CustomerID)

	item, err := env.Carts.AddCartItem(ctx, &models.CartItem{
		CartID:    cart.CartID,
		ProductID: product.ProductID,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	items, err := env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, env.Carts.RemoveCartItem(ctx, item.CartItemID))

	// The in-transaction lookup the removal performed must not have left a
	// cached copy of the deleted item behind.
	_, ok := env.Cache.Get(cache.Carts, cartItemKey(item.CartItemID))
	require.False(t, ok)
	_, ok = env.Cache.Get(cache.Carts, cartItemsKey(cart.CartID))
	require.False(t, ok)

	items, err = env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	require.Empty(t, items)

	gone, err := env.Carts.GetCartItem(ctx, item.CartItemID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestCartStore_RemoveMissingItem(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	err := env.Carts.RemoveCartItem(ctxb(), id)
	require.Error(t, err)
	require.True(t, IsNotFound(err))

	var de *DeletionError
	require.ErrorAs(t, err, &de)
	require.Equal(t, id.String(), de.ID)

	// The failed lookup must not cache anything either.
	_, ok := env.Cache.Get(cache.Carts, cartItemKey(id))
	require.False(t, ok)
}

func TestCartStore_FailedWriteKeepsCacheIntact(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	customer := env.seedCustomer(t, "cart-failed@example.com")
	cart := env.seedCart(t, customer.CustomerID)

	_, err := env.Carts.GetCartItems(ctx, cart.CartID)
	require.NoError(t, err)
	_, ok := env.Cache.Get(cache.Carts, cartItemsKey(cart.CartID))
	require.True(t, ok)

	// Unknown product violates the foreign key, so the unit of work rolls
	// back and nothing may be evicted.
	_, err = env.Carts.AddCartItem(ctx, &models.CartItem{
		CartID:    cart.CartID,
		ProductID: uuid.New(),
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	require.Error(t, err)

	_, ok = env.Cache.Get(cache.Carts, cartItemsKey(cart.CartID))
	require.True(t, ok)
}
