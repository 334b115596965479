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

func userEmailKey(email string) cache.Key {
	return cache.NewKey("email", email)
}

// UserStore is the one write-through facade: a freshly created user is put
// straight into the email key after commit instead of waiting for the next
// read miss, because a signup is almost always followed by a login.
type UserStore struct {
	uow       *uow.UnitOfWork
	users     repo.UserRepo
	customers repo.CustomerRepo
	cache     cache.Cache
}

func NewUserStore(u *uow.UnitOfWork, c cache.Cache) *UserStore {
	return &UserStore{uow: u, cache: c}
}

// CreateUser persists the user row and its customer row in one unit of work;
// both land or neither does. Only after the commit does the user enter the
// cache and the customers namespace get dropped.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User, customer *models.Customer) (*models.User, error) {
	err := s.uow.Run(ctx, func(tx *gorm.DB) error {
		if err := s.users.Save(tx, user); err != nil {
			return err
		}
		customer.UserID = user.UserID
		return s.customers.Save(tx, customer)
	})
	if err != nil {
		return nil, &CreationError{Entity: "user", ID: user.Email, Err: err}
	}

	s.cache.Put(cache.Users, userEmailKey(user.Email), user)
	s.cache.EvictAll(cache.Customers)
	return user, nil
}

// GetUserByEmail is a plain read-through lookup; nil means no such user.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := cache.GetOrLoad(s.cache, cache.Users, userEmailKey(email), func() (*models.User, error) {
		return uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.User, error) {
			return s.users.FindByEmail(tx, email)
		})
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "user", ID: email, Err: err}
	}
	return user, nil
}

// GetRole resolves a role by id. Roles are reference data and are not cached.
func (s *UserStore) GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Role, error) {
		return s.users.FindRoleByID(tx, id)
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "role", ID: id.String(), Err: err}
	}
	return role, nil
}

// EnsureRole returns the role with the given name, creating it on first use.
// Roles are reference data and are not cached.
func (s *UserStore) EnsureRole(ctx context.Context, name string) (*models.Role, error) {
	role, err := uow.RunValue(ctx, s.uow, func(tx *gorm.DB) (*models.Role, error) {
		existing, err := s.users.FindRoleByName(tx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		role := &models.Role{RoleName: name}
		if err := s.users.SaveRole(tx, role); err != nil {
			return nil, err
		}
		return role, nil
	})
	if err != nil {
		return nil, &RetrievalError{Entity: "role", ID: name, Err: err}
	}
	return role, nil
}
