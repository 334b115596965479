package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
)

// ProductSearcher is the full-text side of the catalog, backed by
// elasticsearch.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type SearchHTTP struct {
	Searcher ProductSearcher
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.products")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, "q required")
	}
	limit, offset := pageParams(c)

	total, products, err := h.Searcher.SearchProducts(ctx, query, offset, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "search unavailable")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": products,
		"total": total,
	})
}
