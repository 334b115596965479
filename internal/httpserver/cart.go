package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/service"
	"github.com/ndmitriev/online-store/internal/store"
)

type CartHTTP struct {
	Svc       *service.CartService
	Customers *store.CustomerStore
}

// customerID resolves the authenticated user to their customer profile.
func (h *CartHTTP) customerID(c echo.Context) (uuid.UUID, error) {
	v, ok := c.Get("user_id").(string)
	if !ok || v == "" {
		return uuid.Nil, errors.New("unauthorized")
	}
	userID, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}

	customer, err := h.Customers.GetCustomerByUserID(c.Request().Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	if customer == nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return customer.CustomerID, nil
}

func (h *CartHTTP) GetItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_items")

	customerID, err := h.customerID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetItems(ctx, customerID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	customerID, err := h.customerID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, customerID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "product not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("item added to cart", "cart_item_id", item.CartItemID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	customerID, err := h.customerID(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid item id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateItemQuantity(ctx, customerID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, "not your cart")
		default:
			l.Error("update_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}
	return c.NoContent(http.StatusOK)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	customerID, err := h.customerID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid item id")
	}

	if err := h.Svc.RemoveItem(ctx, customerID, itemID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, "not your cart")
		default:
			l.Error("remove_from_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}
	return c.NoContent(http.StatusNoContent)
}
