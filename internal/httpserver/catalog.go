package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/service"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func pageParams(c echo.Context) (limit, offset int) {
	limit = parseIntDefault(c.QueryParam("limit"), 20)
	offset = parseIntDefault(c.QueryParam("offset"), 0)
	return limit, offset
}

func catalogError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return c.JSON(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrAlreadyExists):
		l.Warn(op, "status", 409, "error", err)
		return c.JSON(http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return c.JSON(http.StatusConflict, "still referenced")
	default:
		l.Error(op, "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
}

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.Create(ctx, req.Name, req.Description)
	if err != nil {
		return catalogError(c, l, "category_create_error", err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid category id")
	}

	category, err := h.Svc.Get(ctx, id)
	if err != nil {
		return catalogError(c, l, "category_get_error", err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid category id")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		return catalogError(c, l, "category_update_error", err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid category id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return catalogError(c, l, "category_delete_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	limit, offset := pageParams(c)

	if q := c.QueryParam("q"); q != "" {
		page, err := h.Svc.Search(ctx, q, limit, offset)
		if err != nil {
			return catalogError(c, l, "category_search_error", err)
		}
		return c.JSON(http.StatusOK, page)
	}

	page, err := h.Svc.List(ctx, limit, offset)
	if err != nil {
		return catalogError(c, l, "category_list_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

type ProductHTTP struct {
	Svc *service.ProductService
}

type productRequest struct {
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
}

func (r productRequest) input() service.ProductInput {
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, req.input())
	if err != nil {
		return catalogError(c, l, "product_create_error", err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return catalogError(c, l, "product_get_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Update(ctx, id, req.input())
	if err != nil {
		return catalogError(c, l, "product_update_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return catalogError(c, l, "product_delete_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	limit, offset := pageParams(c)

	filter := models.ProductFilter{}
	if v := c.QueryParam("name"); v != "" {
		filter.Name = &v
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "invalid category id")
		}
		filter.CategoryID = &id
	}
	if v := c.QueryParam("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "invalid min_price")
		}
		filter.MinPrice = &p
	}
	if v := c.QueryParam("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "invalid max_price")
		}
		filter.MaxPrice = &p
	}

	if filter.IsEmpty() {
		page, err := h.Svc.List(ctx, limit, offset)
		if err != nil {
			return catalogError(c, l, "product_list_error", err)
		}
		return c.JSON(http.StatusOK, page)
	}

	page, err := h.Svc.Search(ctx, filter, limit, offset)
	if err != nil {
		return catalogError(c, l, "product_search_error", err)
	}
	return c.JSON(http.StatusOK, page)
}
