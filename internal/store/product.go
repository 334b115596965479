package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/repo"
	"github.com/ndmitriev/online-store/internal/uow"
)

func productKey(id uuid.UUID) cache.Key {
	return cache.NewKey("product", id.String())
}

func productPageKey(limit, offset int) cache.Key {
	return cache.NewKey("all", fmt.Sprintf("%d:%d", limit, offset))
}

// productFilterKey serializes the filter into a stable key segment. Struct
// fields marshal in declaration order, so equal filters always produce equal
// keys.
func productFilterKey(kind string, filter models.ProductFilter, limit, offset int) cache.Key {
	raw, err := json.Marshal(filter)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", filter))
	}
	return cache.NewKey(kind, fmt.Sprintf("%s:%d:%d", raw, limit, offset))
}

// ProductStore mirrors CategoryStore's namespace-wide policy: filtered and
// paginated result sets are impractical to enumerate per write, so any write
// drops the whole "products" namespace after commit.
type ProductStore struct {
	uow   *uow.UnitOfWork
	repo  repo.ProductRepo
	cache cache.Cache
}

func NewProductStore(u *uow.UnitOfWork, c cache.Cache) *ProductStore {
	return &ProductStore{uow: u, cache: c}
}

func (s *ProductStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Save(tx, product)
	})
	if err != nil {
		return nil, &CreationError{Entity: "product", ID: product.Name, Err: err}
	}

	s.cache.EvictAll(cache.Products)
	return product, nil
}

func (s *ProductStore) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Update(tx, product)
	})
	if err != nil {
		return nil, &UpdateError{Entity: "product", ID: product.ProductID.String(), Err: err}
	}

	s.cache.EvictAll(cache.Products)
	return product, nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteByID(tx, id)
	})
	if err != nil {
		if repo.IsConflict(err) {
			return &ConflictError{Entity: "product", ID: id.String()}
		}
		return &DeletionError{Entity: "product", ID: id.String(), Err: err}
	}

	s.cache.EvictAll(cache.Products)
	return nil
}

func (s *ProductStore) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := cache.GetOrLoad(s.cache, cache.Products, productKey(id), func() (*models.Product, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Product, error) {
			return s.repo.FindByID(tx, id)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "product", ID: id.String(), Err: err}
	}
	return product, nil
}

func (s *ProductStore) GetAllProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	products, err := cache.GetOrLoad(s.cache, cache.Products, productPageKey(limit, offset), func() ([]models.Product, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) ([]models.Product, error) {
			return s.repo.FindAll(tx, limit, offset)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "products", ID: "all", Err: err}
	}
	return products, nil
}

func (s *ProductStore) SearchProducts(ctx context.Context, filter models.ProductFilter, limit, offset int) ([]models.Product, error) {
	products, err := cache.GetOrLoad(s.cache, cache.Products, productFilterKey("search", filter, limit, offset), func() ([]models.Product, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) ([]models.Product, error) {
			return s.repo.FindFiltered(tx, filter, limit, offset)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "products", ID: "search", Err: err}
	}
	return products, nil
}

func (s *ProductStore) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	total, err := cache.GetOrLoad(s.cache, cache.Products, productFilterKey("count", filter, 0, 0), func() (int64, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (int64, error) {
			return s.repo.CountFiltered(tx, filter)
		})
	})
	if err != nil {
		return 0, &RetrievalError{Entity: "products", ID: "count", Err: err}
	}
	return total, nil
}
