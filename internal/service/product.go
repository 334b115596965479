package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndmitriev/online-store/internal/events"
	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/search"
	"github.com/ndmitriev/online-store/internal/store"
)

type ProductService struct {
	Products   *store.ProductStore
	Categories *store.CategoryStore
	Publisher  events.Publisher
	Indexer    search.Indexer
}

type ProductInput struct {
	CategoryID    uuid.UUID
	Name          string
	Description   string
	Price         float64
	StockQuantity int
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("product name required: %w", ErrValidation)
	}
	if in.CategoryID == uuid.Nil {
		return fmt.Errorf("category id required: %w", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("stock must not be negative: %w", ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.categoryExists(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product, err := s.Products.CreateProduct(ctx, &models.Product{
		CategoryID:    in.CategoryID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, product.ProductID.String(), map[string]any{
		"type":       "product_created",
		"product_id": product.ProductID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.categoryExists(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.Products.UpdateProduct(ctx, &models.Product{
		ProductID:     id,
		CategoryID:    in.CategoryID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		UpdatedAt:     time.Now().UTC(),
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, id.String(), map[string]any{
		"type":       "product_updated",
		"product_id": id,
	})
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Products.DeleteProduct(ctx, id)
	if err != nil {
		var ce *store.ConflictError
		if errors.As(err, &ce) {
			return fmt.Errorf("product %s is still in carts: %w", id, ErrConflict)
		}
		if store.IsNotFound(err) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}

	if s.Indexer != nil {
		if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Error("deindex product", "error", err, "product_id", id)
		}
	}
	s.publish(ctx, id.String(), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return nil
}

func (s *ProductService) List(ctx context.Context, limit, offset int) (*ProductPage, error) {
	limit = normalizeLimit(limit)
	items, err := s.Products.GetAllProducts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Products.CountProducts(ctx, models.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total}, nil
}

// Search runs a filtered catalog query against the database. Full-text
// search goes through the search layer instead.
func (s *ProductService) Search(ctx context.Context, filter models.ProductFilter, limit, offset int) (*ProductPage, error) {
	limit = normalizeLimit(limit)
	items, err := s.Products.SearchProducts(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Products.CountProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total}, nil
}

func (s *ProductService) categoryExists(ctx context.Context, id uuid.UUID) error {
	category, err := s.Categories.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ProductService) index(ctx context.Context, product *models.Product) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("index product", "error", err, "product_id", product.ProductID)
	}
}

func (s *ProductService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("publish product event", "error", err)
	}
}
