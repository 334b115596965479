package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/repo"
	"github.com/ndmitriev/online-store/internal/uow"
)

func categoryKey(id uuid.UUID) cache.Key {
	return cache.NewKey("category", id.String())
}

func categoryNameKey(name string) cache.Key {
	return cache.NewKey("name", strings.ToLower(name))
}

func categorySearchKey(query string, limit, offset int) cache.Key {
	return cache.NewKey("search", fmt.Sprintf("%s:%d:%d", strings.ToLower(query), limit, offset))
}

func categoryPageKey(limit, offset int) cache.Key {
	return cache.NewKey("all", fmt.Sprintf("%d:%d", limit, offset))
}

// CategoryStore invalidates namespace-wide: a category write can change any
// cached page, search or count, so every write drops the whole "categories"
// namespace after commit.
type CategoryStore struct {
	uow   *uow.UnitOfWork
	repo  repo.CategoryRepo
	cache cache.Cache
}

func NewCategoryStore(u *uow.UnitOfWork, c cache.Cache) *CategoryStore {
	return &CategoryStore{uow: u, cache: c}
}

func (s *CategoryStore) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Save(tx, category)
	})
	if err != nil {
		return nil, &CreationError{Entity: "category", ID: category.Name, Err: err}
	}

	s.cache.EvictAll(cache.Categories)
	return category, nil
}

func (s *CategoryStore) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Update(tx, category)
	})
	if err != nil {
		return nil, &UpdateError{Entity: "category", ID: category.CategoryID.String(), Err: err}
	}

	s.cache.EvictAll(cache.Categories)
	return category, nil
}

// DeleteCategory removes a category. A referential failure (products still
// point at it) maps to ConflictError; anything else to DeletionError. Either
// way the transaction rolled back and no cache entry is touched.
func (s *CategoryStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Delete(tx, id)
	})
	if err != nil {
		if repo.IsConflict(err) {
			return &ConflictError{Entity: "category", ID: id.String()}
		}
		return &DeletionError{Entity: "category", ID: id.String(), Err: err}
	}

	s.cache.EvictAll(cache.Categories)
	return nil
}

func (s *CategoryStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := cache.GetOrLoad(s.cache, cache.Categories, categoryKey(id), func() (*models.Category, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Category, error) {
			return s.repo.FindByID(tx, id)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "category", ID: id.String(), Err: err}
	}
	return category, nil
}

func (s *CategoryStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := cache.GetOrLoad(s.cache, cache.Categories, categoryNameKey(name), func() (*models.Category, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Category, error) {
			return s.repo.FindByName(tx, name)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "category", ID: name, Err: err}
	}
	return category, nil
}

func (s *CategoryStore) SearchByName(ctx context.Context, query string, limit, offset int) ([]models.Category, error) {
	categories, err := cache.GetOrLoad(s.cache, cache.Categories, categorySearchKey(query, limit, offset), func() ([]models.Category, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) ([]models.Category, error) {
			return s.repo.SearchByName(tx, query, limit, offset)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "categories", ID: query, Err: err}
	}
	return categories, nil
}

func (s *CategoryStore) GetAllCategories(ctx context.Context, limit, offset int) ([]models.Category, error) {
	categories, err := cache.GetOrLoad(s.cache, cache.Categories, categoryPageKey(limit, offset), func() ([]models.Category, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) ([]models.Category, error) {
			return s.repo.FindAll(tx, limit, offset)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "categories", ID: "all", Err: err}
	}
	return categories, nil
}

func (s *CategoryStore) Count(ctx context.Context) (int64, error) {
	total, err := cache.GetOrLoad(s.cache, cache.Categories, cache.NewKey("count", "all"), func() (int64, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (int64, error) {
			return s.repo.Count(tx)
		})
	})
	if err != nil {
		return 0, &RetrievalError{Entity: "categories", ID: "count", Err: err}
	}
	return total, nil
}

func (s *CategoryStore) CountByName(ctx context.Context, query string) (int64, error) {
	total, err := cache.GetOrLoad(s.cache, cache.Categories, cache.NewKey("count", strings.ToLower(query)), func() (int64, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (int64, error) {
			return s.repo.CountByName(tx, query)
		})
	})
	if err != nil {
		return 0, &RetrievalError{Entity: "categories", ID: query, Err: err}
	}
	return total, nil
}
