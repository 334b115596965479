// Package store holds the per-aggregate facades that compose the unit of
// work, record access and the cache. Each aggregate keeps its own
// invalidation policy: carts evict exactly the keys a write touches,
// categories and products drop their whole namespace, users write through.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/repo"
	"github.com/ndmitriev/online-store/internal/uow"
)

func cartKey(id uuid.UUID) cache.Key {
	return cache.NewKey("cart", id.String())
}

func cartCustomerKey(customerID uuid.UUID) cache.Key {
	return cache.NewKey("customer", customerID.String())
}

func cartItemsKey(cartID uuid.UUID) cache.Key {
	return cache.NewKey("items", cartID.String())
}

func cartItemKey(cartItemID uuid.UUID) cache.Key {
	return cache.NewKey("item", cartItemID.String())
}

type CartStore struct {
	uow   *uow.UnitOfWork
	repo  repo.CartRepo
	cache cache.Cache
}

func NewCartStore(u *uow.UnitOfWork, c cache.Cache) *CartStore {
	return &CartStore{uow: u, cache: c}
}

// CreateCart persists a new cart. The customer->cart and cart->cart keys are
// evicted only once the commit went through.
func (s *CartStore) CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Save(tx, cart)
	})
	if err != nil {
		return nil, &CreationError{Entity: "cart", ID: cart.CartID.String(), Err: err}
	}

	s.cache.Evict(cache.Carts, cartCustomerKey(cart.CustomerID))
	s.cache.Evict(cache.Carts, cartKey(cart.CartID))
	return cart, nil
}

// AddCartItem persists a new item and evicts the owning cart's item list.
func (s *CartStore) AddCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.AddItem(tx, item)
	})
	if err != nil {
		return nil, &CreationError{Entity: "cart item", ID: item.CartItemID.String(), Err: err}
	}

	s.cache.Evict(cache.Carts, cartItemsKey(item.CartID))
	return item, nil
}

// RemoveCartItem looks the item up inside the transaction to learn its owning
// cart, deletes it, and after commit evicts both the item list of that cart
// and the single-item key. A delete never inserts anything into the cache.
func (s *CartStore) RemoveCartItem(ctx context.Context, cartItemID uuid.UUID) error {
	var removed *models.CartItem
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(tx, cartItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrNotFound
		}
		removed = item
		return s.repo.DeleteItemByID(tx, cartItemID)
	})
	if err != nil {
		return &DeletionError{Entity: "cart item", ID: cartItemID.String(), Err: err}
	}

	s.cache.Evict(cache.Carts, cartItemsKey(removed.CartID))
	s.cache.Evict(cache.Carts, cartItemKey(cartItemID))
	return nil
}

// UpdateCartItemQuantity changes an item's quantity and evicts the keys the
// write could have gone stale: the cart's item list and the single item.
func (s *CartStore) UpdateCartItemQuantity(ctx context.Context, cartItemID uuid.UUID, newQuantity int) error {
	var updated *models.CartItem
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(tx, cartItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrNotFound
		}
		updated = item
		return s.repo.UpdateItemQuantity(tx, cartItemID, newQuantity)
	})
	if err != nil {
		return &UpdateError{Entity: "cart item", ID: cartItemID.String(), Err: err}
	}

	s.cache.Evict(cache.Carts, cartItemsKey(updated.CartID))
	s.cache.Evict(cache.Carts, cartItemKey(cartItemID))
	return nil
}

// GetCartItems returns all items of a cart, read-through.
func (s *CartStore) GetCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	items, err := cache.GetOrLoad(s.cache, cache.Carts, cartItemsKey(cartID), func() ([]models.CartItem, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) ([]models.CartItem, error) {
			return s.repo.FindItemsByCartID(tx, cartID)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "cart items", ID: cartID.String(), Err: err}
	}
	return items, nil
}

// GetCartByCustomerID returns the customer's cart or nil, read-through.
func (s *CartStore) GetCartByCustomerID(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart, err := cache.GetOrLoad(s.cache, cache.Carts, cartCustomerKey(customerID), func() (*models.Cart, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Cart, error) {
			return s.repo.FindByCustomerID(tx, customerID)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "cart", ID: customerID.String(), Err: err}
	}
	return cart, nil
}

// GetCartItem returns a single item or nil, read-through.
func (s *CartStore) GetCartItem(ctx context.Context, cartItemID uuid.UUID) (*models.CartItem, error) {
	item, err := cache.GetOrLoad(s.cache, cache.Carts, cartItemKey(cartItemID), func() (*models.CartItem, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.CartItem, error) {
			return s.repo.FindItemByID(tx, cartItemID)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "cart item", ID: cartItemID.String(), Err: err}
	}
	return item, nil
}

// IsNotFound reports whether err wraps ErrNotFound or the driver-level
// record-not-found the repo layer surfaces.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
