package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gereacosta1/OnePointMotors/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *catalog.Repository {
	// Use in-memory database for tests
	repo, err := catalog.NewRepository(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	if err := repo.RunMigrations("./migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestList_ReturnsSeededProducts(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.List(context.Background(), catalog.Filter{})

	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestList_DefaultSortPutsFeaturedFirst(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.List(context.Background(), catalog.Filter{})

	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.True(t, products[0].Featured)
	assert.False(t, products[4].Featured)
}

func TestList_SortByPriceAscending(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.List(context.Background(), catalog.Filter{Sort: catalog.SortPriceAsc})

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}
}

func TestList_FilterByMinPower(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.List(context.Background(), catalog.Filter{MinPower: 600})

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.PowerW, 600)
	}
}

func TestList_PriceRange(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.List(context.Background(), catalog.Filter{MinPrice: 1100, MaxPrice: 1700})

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 1100.0)
		assert.LessOrEqual(t, p.Price, 1700.0)
	}
}

func TestGetBySlug_Found(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	product, err := repo.GetBySlug(context.Background(), "scooter-electric-pro-max")

	require.NoError(t, err)
	assert.Equal(t, "1", product.ID)
	assert.Equal(t, "Scooter Electric Pro Max", product.Name)
	assert.Equal(t, 1299.0, product.Price)
	assert.Equal(t, 65, product.AutonomyKM)
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	_, err := repo.GetBySlug(context.Background(), "does-not-exist")

	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
}

func TestList_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, catalog.Filter{})
	assert.Error(t, err)
}
