package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/repo"
	"github.com/ndmitriev/online-store/internal/uow"
)

func customerKey(id uuid.UUID) cache.Key {
	return cache.NewKey("customer", id.String())
}

func customerUserKey(userID uuid.UUID) cache.Key {
	return cache.NewKey("user", userID.String())
}

type CustomerStore struct {
	uow   *uow.UnitOfWork
	repo  repo.CustomerRepo
	cache cache.Cache
}

func NewCustomerStore(u *uow.UnitOfWork, c cache.Cache) *CustomerStore {
	return &CustomerStore{uow: u, cache: c}
}

func (s *CustomerStore) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := cache.GetOrLoad(s.cache, cache.Customers, customerKey(id), func() (*models.Customer, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Customer, error) {
			return s.repo.FindByID(tx, id)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "customer", ID: id.String(), Err: err}
	}
	return customer, nil
}

func (s *CustomerStore) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	customer, err := cache.GetOrLoad(s.cache, cache.Customers, customerUserKey(userID), func() (*models.Customer, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Customer, error) {
			return s.repo.FindByUserID(tx, userID)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "customer", ID: userID.String(), Err: err}
	}
	return customer, nil
}

func (s *CustomerStore) UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		return s.repo.Update(tx, customer)
	})
	if err != nil {
		return nil, &UpdateError{Entity: "customer", ID: customer.CustomerID.String(), Err: err}
	}

	s.cache.EvictAll(cache.Customers)
	return customer, nil
}
