package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ndmitriev/online-store/internal/models"
)

func TestCategoryService_CreateRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Category.Create(ctx, "Electronics", "gadgets")
	require.NoError(t, err)

	_, err = env.Category.Create(ctx, "electronics", "lowercase dup")
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.Category.Create(ctx, "  ", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCategoryService_UpdateKeepsOwnName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.createCategory(t, "Toys")
	env.createCategory(t, "Games")

	// Renaming to itself is fine, renaming onto another category is not.
	updated, err := env.Category.Update(ctx, category.CategoryID, "Toys", "updated")
	require.NoError(t, err)
	require.Equal(t, "updated", updated.Description)

	_, err = env.Category.Update(ctx, category.CategoryID, "GAMES", "")
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.Category.Update(ctx, uuid.New(), "Fresh", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_DeleteMapsConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.createCategory(t, "Appliances")
	env.createProduct(t, category, "Kettle", 29.99, 10)

	err := env.Category.Delete(ctx, category.CategoryID)
	require.ErrorIs(t, err, ErrConflict)

	err = env.Category.Delete(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	empty := env.createCategory(t, "Empty")
	require.NoError(t, env.Category.Delete(ctx, empty.CategoryID))
}

func TestCategoryService_ListAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCategory(t, "Garden Tools")
	env.createCategory(t, "Power Tools")
	env.createCategory(t, "Furniture")

	page, err := env.Category.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 3, page.Total)

	found, err := env.Category.Search(ctx, "tools", 10, 0)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	require.EqualValues(t, 2, found.Total)
}

func TestProductService_CreateRequiresCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.createCategory(t, "Office")

	_, err := env.Product.Create(ctx, ProductInput{Name: "Desk", CategoryID: uuid.New(), Price: 10})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Product.Create(ctx, ProductInput{CategoryID: category.CategoryID, Price: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Product.Create(ctx, ProductInput{Name: "Desk", CategoryID: category.CategoryID, Price: -1})
	require.ErrorIs(t, err, ErrValidation)

	product, err := env.Product.Create(ctx, ProductInput{
		Name:          "Desk",
		CategoryID:    category.CategoryID,
		Price:         149.99,
		StockQuantity: 3,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, product.ProductID)
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category, "Mouse", 49.99, 30)

	updated, err := env.Product.Update(ctx, product.ProductID, ProductInput{
		CategoryID:    category.CategoryID,
		Name:          "Wireless Mouse",
		Price:         59.99,
		StockQuantity: 25,
	})
	require.NoError(t, err)
	require.Equal(t, "Wireless Mouse", updated.Name)

	got, err := env.Product.Get(ctx, product.ProductID)
	require.NoError(t, err)
	require.Equal(t, 59.99, got.Price)

	_, err = env.Product.Update(ctx, uuid.New(), ProductInput{
		CategoryID: category.CategoryID,
		Name:       "Ghost",
	})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.Product.Delete(ctx, product.ProductID))
	_, err = env.Product.Get(ctx, product.ProductID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_DeleteProductInCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.registerCustomer(t, "keeper@example.com")
	category := env.createCategory(t, "Music")
	product := env.createProduct(t, category, "Record", 24.99, 5)

	_, err := env.Cart.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)

	err = env.Product.Delete(ctx, product.ProductID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestProductService_SearchFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	electronics := env.createCategory(t, "Electronics")
	office := env.createCategory(t, "Office")
	env.createProduct(t, electronics, "Gaming Mouse", 49.99, 30)
	env.createProduct(t, electronics, "Gaming Keyboard", 89.99, 20)
	env.createProduct(t, office, "Office Chair", 199.99, 5)

	name := "gaming"
	page, err := env.Product.Search(ctx, models.ProductFilter{Name: &name}, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 2, page.Total)

	maxPrice := 100.0
	page, err = env.Product.Search(ctx, models.ProductFilter{MaxPrice: &maxPrice}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.EqualValues(t, 2, page.Total)
}
