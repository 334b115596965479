package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndmitriev/online-store/internal/events"
	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/store"
)

type CartService struct {
	Carts     *store.CartStore
	Customers *store.CustomerStore
	Products  *store.ProductStore
	Publisher events.Publisher
}

// cartFor returns the customer's cart, creating one on first use.
func (s *CartService) cartFor(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	customer, err := s.Customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}

	cart, err := s.Carts.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now().UTC()
	return s.Carts.CreateCart(ctx, &models.Cart{
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (s *CartService) GetItems(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error) {
	cart, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.Carts.GetCartItems(ctx, cart.CartID)
}

func (s *CartService) AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	product, err := s.Products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	cart, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item, err := s.Carts.AddCartItem(ctx, &models.CartItem{
		CartID:    cart.CartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, customerID.String(), map[string]any{
		"type":       "cart_item_added",
		"cart_id":    cart.CartID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return item, nil
}

// itemOwnedBy fetches the item and verifies it sits in the customer's cart.
func (s *CartService) itemOwnedBy(ctx context.Context, customerID, cartItemID uuid.UUID) (*models.CartItem, error) {
	item, err := s.Carts.GetCartItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("cart item %s: %w", cartItemID, ErrNotFound)
	}

	cart, err := s.Carts.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.CartID != item.CartID {
		return nil, fmt.Errorf("cart item %s does not belong to customer: %w", cartItemID, ErrForbidden)
	}
	return item, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, customerID, cartItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}
	if _, err := s.itemOwnedBy(ctx, customerID, cartItemID); err != nil {
		return err
	}

	if err := s.Carts.UpdateCartItemQuantity(ctx, cartItemID, quantity); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("cart item %s: %w", cartItemID, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, cartItemID uuid.UUID) error {
	item, err := s.itemOwnedBy(ctx, customerID, cartItemID)
	if err != nil {
		return err
	}

	if err := s.Carts.RemoveCartItem(ctx, cartItemID); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("cart item %s: %w", cartItemID, ErrNotFound)
		}
		return err
	}

	s.publish(ctx, customerID.String(), map[string]any{
		"type":       "cart_item_removed",
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, events.TopicCartEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("publish cart event", "error", err)
	}
}
