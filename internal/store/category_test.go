package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/models"
)

func TestCategoryStore_CreateDropsNamespace(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()

	categories, err := env.Categories.GetAllCategories(ctx, 10, 0)
	require.NoError(t, err)
	require.Empty(t, categories)

	total, err := env.Categories.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, total)

	created, err := env.Categories.CreateCategory(ctx, &models.Category{Name: "Electronics"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.CategoryID)

	// Both the cached page and the cached count were invalidated.
	categories, err = env.Categories.GetAllCategories(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, categories, 1)

	total, err = env.Categories.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestCategoryStore_GetByNameIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	env.seedCategory(t, "Electronics")

	found, err := env.Categories.GetCategoryByName(ctx, "ELECTRONICS")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Electronics", found.Name)

	// Both spellings resolve to the same cache entry.
	_, ok := env.Cache.Get(cache.Categories, categoryNameKey("electronics"))
	require.True(t, ok)
}

func TestCategoryStore_UpdateInvalidatesStaleRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	category := env.seedCategory(t, "Toys")

	got, err := env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.Equal(t, "Toys", got.Name)

	category.Name = "Board Games"
	_, err = env.Categories.UpdateCategory(ctx, category)
	require.NoError(t, err)

	got, err = env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.Equal(t, "Board Games", got.Name)
}

func TestCategoryStore_DeleteReferencedCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	category := env.seedCategory(t, "Appliances")
	env.seedProduct(t, category.CategoryID, "Kettle", 29.99, 10)

	got, err := env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.NotNil(t, got)

	err = env.Categories.DeleteCategory(ctx, category.CategoryID)
	require.Error(t, err)

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "category", ce.Entity)

	// The refused delete rolled back and left the cache alone.
	_, ok := env.Cache.Get(cache.Categories, categoryKey(category.CategoryID))
	require.True(t, ok)

	got, err = env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestCategoryStore_DeleteUnreferencedCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	category := env.seedCategory(t, "Seasonal")

	got, err := env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, env.Categories.DeleteCategory(ctx, category.CategoryID))

	got, err = env.Categories.GetCategory(ctx, category.CategoryID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCategoryStore_DeleteMissingCategory(t *testing.T) {
	env := newTestEnv(t)

	err := env.Categories.DeleteCategory(ctxb(), uuid.New())
	require.Error(t, err)
	require.True(t, IsNotFound(err))

	var de *DeletionError
	require.ErrorAs(t, err, &de)
}

func TestCategoryStore_SearchByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	env.seedCategory(t, "Garden Tools")
	env.seedCategory(t, "Power Tools")
	env.seedCategory(t, "Furniture")

	matches, err := env.Categories.SearchByName(ctx, "tool", 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Garden Tools", matches[0].Name)
	require.Equal(t, "Power Tools", matches[1].Name)

	total, err := env.Categories.CountByName(ctx, "tool")
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	page, err := env.Categories.SearchByName(ctx, "tool", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "Power Tools", page[0].Name)
}

func TestCategoryStore_WritesLeaveOtherNamespacesAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxb()
	category := env.seedCategory(t, "Outdoor")
	product := env.seedProduct(t, category.CategoryID, "Tent", 99.99, 2)

	_, err := env.Products.GetProduct(ctx, product.ProductID)
	require.NoError(t, err)
	_, ok := env.Cache.Get(cache.Products, productKey(product.ProductID))
	require.True(t, ok)

	_, err = env.Categories.CreateCategory(ctx, &models.Category{Name: "Indoor"})
	require.NoError(t, err)

	// The category write dropped its own namespace only.
	_, ok = env.Cache.Get(cache.Products, productKey(product.ProductID))
	require.True(t, ok)
	_, ok = env.Cache.Get(cache.Categories, categoryKey(category.CategoryID))
	require.False(t, ok)
}
