package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/01moynul/product-catalog/internal/database"
	"github.com/01moynul/product-catalog/internal/models"
	"github.com/01moynul/product-catalog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.New(db, store.DialectSQLite)
	require.NoError(t, s.Migrate())
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate())
}

func TestGetProductNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetProduct(42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	brand := models.PlaceholderBrand(5)
	require.NoError(t, tx.CreateBrand(brand))

	expiration := time.Now().UTC().Add(90 * 24 * time.Hour).Truncate(time.Second)
	product := &models.Product{
		Name:           "Product 1",
		Rating:         9.0,
		Featured:       true,
		ItemsInStock:   9,
		ExpirationDate: &expiration,
		BrandID:        &brand.ID,
	}
	require.NoError(t, tx.InsertProduct(product))
	require.NotZero(t, product.ID)

	var categories []models.Category
	for _, id := range []int64{1, 5, 16} {
		c, err := tx.GetCategory(id)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.Nil(t, c)

		placeholder := models.PlaceholderCategory(id)
		require.NoError(t, tx.CreateCategory(placeholder))
		categories = append(categories, *placeholder)
	}
	require.NoError(t, tx.ReplaceCategories(product.ID, categories))
	require.NoError(t, tx.Commit())

	fetched, err := s.GetProduct(product.ID)
	require.NoError(t, err)

	assert.Equal(t, "Product 1", fetched.Name)
	assert.Equal(t, 9.0, fetched.Rating)
	assert.True(t, fetched.Featured)
	assert.Equal(t, int64(9), fetched.ItemsInStock)
	require.NotNil(t, fetched.ExpirationDate)
	assert.Equal(t, expiration, fetched.ExpirationDate.UTC().Truncate(time.Second))

	require.NotNil(t, fetched.Brand)
	assert.Equal(t, "Brand 5", fetched.Brand.Name)
	assert.Equal(t, "US", fetched.Brand.CountryCode)

	// categories come back in attachment order
	require.Len(t, fetched.Categories, 3)
	assert.Equal(t, int64(1), fetched.Categories[0].ID)
	assert.Equal(t, int64(5), fetched.Categories[1].ID)
	assert.Equal(t, int64(16), fetched.Categories[2].ID)
}

func TestCreateCategoryConflict(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.CreateCategory(models.PlaceholderCategory(3)))

	err = tx.CreateCategory(models.PlaceholderCategory(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrConflict))

	// the existing row is still reachable after the failed insert
	c, err := tx.GetCategory(3)
	require.NoError(t, err)
	assert.Equal(t, "Category 3", c.Name)
}

func TestCreateBrandConflict(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.CreateBrand(models.PlaceholderBrand(4)))
	err = tx.CreateBrand(models.PlaceholderBrand(4))
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestUpdateProductFields(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	product := &models.Product{Name: "Before", Rating: 5.0, ItemsInStock: 10}
	require.NoError(t, tx.InsertProduct(product))
	require.NoError(t, tx.ReplaceCategories(product.ID, []models.Category{{ID: 1}}))
	require.NoError(t, tx.Commit())

	tx, err = s.Begin()
	require.NoError(t, err)
	err = tx.UpdateProductFields(product.ID, map[string]any{
		"name":           "After",
		"items_in_stock": int64(4),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	fetched, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)
	assert.Equal(t, int64(4), fetched.ItemsInStock)
	assert.Equal(t, 5.0, fetched.Rating) // untouched
}

func TestDeleteProductKeepsReferenceRows(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	brand := models.PlaceholderBrand(2)
	require.NoError(t, tx.CreateBrand(brand))
	require.NoError(t, tx.CreateCategory(models.PlaceholderCategory(1)))

	product := &models.Product{Name: "Doomed", Rating: 1.0, ItemsInStock: 1, BrandID: &brand.ID}
	require.NoError(t, tx.InsertProduct(product))
	require.NoError(t, tx.ReplaceCategories(product.ID, []models.Category{{ID: 1}}))
	require.NoError(t, tx.Commit())

	deleted, err := s.DeleteProduct(product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetProduct(product.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// deletion cascades the links only, never the referenced rows
	brands, err := s.ListBrands()
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	categories, err := s.ListCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestDeleteProductMissing(t *testing.T) {
	s := newTestStore(t)
	deleted, err := s.DeleteProduct(99)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListProductsEmpty(t *testing.T) {
	s := newTestStore(t)
	products, err := s.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products) // serializes as [], not null
}
