package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/events"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/search"
	"github.com/ndmitriev/online-store/internal/store"
	"github.com/ndmitriev/online-store/internal/uow"
)

type testEnv struct {
	DB       *gorm.DB
	Auth     *AuthService
	Cart     *CartService
	Category *CategoryService
	Product  *ProductService

	Customers *store.CustomerStore
}

func newTestEnv(t *testing.T) *testEnv {
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

	c := cache.New(cache.Config{Capacity: 1000, NumShards: 8, TTL: time.Hour})
	u := uow.New(gdb)

	users := store.NewUserStore(u, c)
	customers := store.NewCustomerStore(u, c)
	carts := store.NewCartStore(u, c)
	categories := store.NewCategoryStore(u, c)
	products := store.NewProductStore(u, c)

	return &testEnv{
		DB: gdb,
		Auth: &AuthService{
			Users:         users,
			Publisher:     events.Nop{},
			AccessSecret:  []byte("access-secret"),
			RefreshSecret: []byte("refresh-secret"),
		},
		Cart: &CartService{
			Carts:     carts,
			Customers: customers,
			Products:  products,
			Publisher: events.Nop{},
		},
		Category: &CategoryService{Categories: categories},
		Product: &ProductService{
			Products:   products,
			Categories: categories,
			Publisher:  events.Nop{},
			Indexer:    search.NopIndexer{},
		},
		Customers: customers,
	}
}

// registerCustomer signs a customer up through the auth service and returns
// the customer row the signup created.
func (env *testEnv) registerCustomer(t *testing.T, email string) *models.Customer {
	t.Helper()

	user, err := env.Auth.Register(context.Background(), RegisterRequest{
		Email:     email,
		Password:  "sup3rsecret",
		FirstName: "Test",
		LastName:  "Customer",
	})
	require.NoError(t, err)

	customer, err := env.Customers.GetCustomerByUserID(context.Background(), user.UserID)
	require.NoError(t, err)
	require.NotNil(t, customer)
	return customer
}

func (env *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := env.Category.Create(context.Background(), name, "")
	require.NoError(t, err)
	return category
}

func (env *testEnv) createProduct(t *testing.T, category *models.Category, name string, price float64, stock int) *models.Product {
	t.Helper()
	product, err := env.Product.Create(context.Background(), ProductInput{
		CategoryID:    category.CategoryID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return product
}
