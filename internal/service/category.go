package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/store"
)

type CategoryService struct {
	Categories *store.CategoryStore
}

type CategoryPage struct {
	Items []models.Category `json:"items"`
	Total int64             `json:"total"`
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}

	// Names are unique regardless of casing, so check before inserting and
	// surface a conflict the caller can act on.
	existing, err := s.Categories.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("category %q: %w", name, ErrAlreadyExists)
	}

	now := time.Now().UTC()
	return s.Categories.CreateCategory(ctx, &models.Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.Categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}

	existing, err := s.Categories.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CategoryID != id {
		return nil, fmt.Errorf("category %q: %w", name, ErrAlreadyExists)
	}

	updated, err := s.Categories.UpdateCategory(ctx, &models.Category{
		CategoryID:  id,
		Name:        name,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Categories.DeleteCategory(ctx, id)
	if err != nil {
		var ce *store.ConflictError
		if errors.As(err, &ce) {
			return fmt.Errorf("category %s still has products: %w", id, ErrConflict)
		}
		if store.IsNotFound(err) {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CategoryService) List(ctx context.Context, limit, offset int) (*CategoryPage, error) {
	limit = normalizeLimit(limit)
	items, err := s.Categories.GetAllCategories(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Items: items, Total: total}, nil
}

func (s *CategoryService) Search(ctx context.Context, query string, limit, offset int) (*CategoryPage, error) {
	limit = normalizeLimit(limit)
	items, err := s.Categories.SearchByName(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Categories.CountByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Items: items, Total: total}, nil
}

const defaultPageSize = 20

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultPageSize
	}
	return limit
}
