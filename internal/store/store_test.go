package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/uow"
)

type testEnv struct {
	DB         *gorm.DB
	Cache      *cache.Store
	UoW        *uow.UnitOfWork
	Carts      *CartStore
	Categories *CategoryStore
	Products   *ProductStore
	Users      *UserStore
	Customers  *CustomerStore
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		name,
	)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Cart{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	))
	return gdb
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := newTestDB(t)
	c := cache.New(cache.Config{Capacity: 1000, NumShards: 8, TTL: time.Hour})
	u := uow.New(gdb)

	return &testEnv{
		DB:         gdb,
		Cache:      c,
		UoW:        u,
		Carts:      NewCartStore(u, c),
		Categories: NewCategoryStore(u, c),
		Products:   NewProductStore(u, c),
		Users:      NewUserStore(u, c),
		Customers:  NewCustomerStore(u, c),
	}
}

// seedCustomer inserts a user+customer pair directly, bypassing the stores.
func (env *testEnv) seedCustomer(t *testing.T, email string) *models.Customer {
	t.Helper()

	role := models.Role{RoleName: models.RoleCustomer + "-" + email}
	require.NoError(t, env.DB.Create(&role).Error)

	user := models.User{Email: email, PasswordHash: "x", RoleID: role.RoleID, CreatedAt: time.Now().UTC()}
	require.NoError(t, env.DB.Create(&user).Error)

	customer := models.Customer{UserID: user.UserID, FirstName: "Test", LastName: "Customer", IsActive: true}
	require.NoError(t, env.DB.Create(&customer).Error)
	return &customer
}

func (env *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	require.NoError(t, env.DB.Create(&category).Error)
	return &category
}

func (env *testEnv) seedProduct(t *testing.T, categoryID uuid.UUID, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:    categoryID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, env.DB.Create(&product).Error)
	return &product
}

func (env *testEnv) seedCart(t *testing.T, customerID uuid.UUID) *models.Cart {
	t.Helper()
	cart := models.Cart{CustomerID: customerID, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	require.NoError(t, env.DB.Create(&cart).Error)
	return &cart
}

func ctxb() context.Context {
	return context.Background()
}
