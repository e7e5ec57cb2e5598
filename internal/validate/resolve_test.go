package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/01moynul/product-catalog/internal/models"
	"github.com/01moynul/product-catalog/internal/store"
	"github.com/01moynul/product-catalog/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRefs is an in-memory ReferenceStore. With raceOnCreate set it
// simulates a concurrent request winning the insert: every create fails
// with ErrConflict after planting the row a retry lookup will find.
type fakeRefs struct {
	categories   map[int64]models.Category
	brands       map[int64]models.Brand
	raceOnCreate bool
	created      int
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{
		categories: map[int64]models.Category{},
		brands:     map[int64]models.Brand{},
	}
}

func (f *fakeRefs) GetCategory(id int64) (*models.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeRefs) CreateCategory(c *models.Category) error {
	if f.raceOnCreate {
		f.categories[c.ID] = models.Category{ID: c.ID, Name: "Raced"}
		return store.ErrConflict
	}
	f.categories[c.ID] = *c
	f.created++
	return nil
}

func (f *fakeRefs) GetBrand(id int64) (*models.Brand, error) {
	if b, ok := f.brands[id]; ok {
		return &b, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeRefs) CreateBrand(b *models.Brand) error {
	if f.raceOnCreate {
		f.brands[b.ID] = models.Brand{ID: b.ID, Name: "Raced", CountryCode: "DE"}
		return store.ErrConflict
	}
	f.brands[b.ID] = *b
	f.created++
	return nil
}

func rawIDs(ids ...string) []any {
	list := make([]any, len(ids))
	for i, id := range ids {
		list[i] = json.Number(id)
	}
	return list
}

func TestResolveCategoriesCreatesPlaceholders(t *testing.T) {
	refs := newFakeRefs()
	p := &models.Product{}

	err := validate.ResolveCategories(rawIDs("1", "5", "16"), refs, p)
	require.NoError(t, err)

	require.Len(t, p.Categories, 3)
	assert.Equal(t, "Category 1", p.Categories[0].Name)
	assert.Equal(t, "Category 5", p.Categories[1].Name)
	assert.Equal(t, "Category 16", p.Categories[2].Name)
	assert.Equal(t, 3, refs.created)
}

func TestResolveCategoriesAttachesExisting(t *testing.T) {
	refs := newFakeRefs()
	refs.categories[2] = models.Category{ID: 2, Name: "Food"}
	p := &models.Product{}

	err := validate.ResolveCategories(rawIDs("2"), refs, p)
	require.NoError(t, err)

	require.Len(t, p.Categories, 1)
	assert.Equal(t, "Food", p.Categories[0].Name)
	assert.Equal(t, 0, refs.created)
}

func TestResolveCategoriesDeduplicates(t *testing.T) {
	refs := newFakeRefs()
	p := &models.Product{}

	err := validate.ResolveCategories(rawIDs("3", "1", "3", "1", "2"), refs, p)
	require.NoError(t, err)

	// each distinct id attaches once, first-seen order preserved
	require.Len(t, p.Categories, 3)
	assert.Equal(t, int64(3), p.Categories[0].ID)
	assert.Equal(t, int64(1), p.Categories[1].ID)
	assert.Equal(t, int64(2), p.Categories[2].ID)
}

func TestResolveCategoriesNotAList(t *testing.T) {
	err := validate.ResolveCategories("Food", newFakeRefs(), &models.Product{})
	require.Error(t, err)
	assert.Equal(t, "Key 'categories' must be a list", err.Error())
}

func TestResolveCategoriesNotAnInteger(t *testing.T) {
	raw := []any{map[string]any{"name": "Category 1", "id": json.Number("2")}}
	err := validate.ResolveCategories(raw, newFakeRefs(), &models.Product{})
	require.Error(t, err)

	verr, ok := validate.AsError(err)
	require.True(t, ok)
	assert.Equal(t, validate.ErrNotAnInteger, verr.Kind)
	assert.Contains(t, err.Error(), "must be an integer")
}

func TestResolveCategoriesConflictRetry(t *testing.T) {
	refs := newFakeRefs()
	refs.raceOnCreate = true
	p := &models.Product{}

	err := validate.ResolveCategories(rawIDs("9"), refs, p)
	require.NoError(t, err)

	// the row created by the concurrent request is attached, not ours
	require.Len(t, p.Categories, 1)
	assert.Equal(t, "Raced", p.Categories[0].Name)
}

func TestResolveBrandAbsentIsNoOp(t *testing.T) {
	existing := int64(4)
	p := &models.Product{BrandID: &existing}

	err := validate.ResolveBrand(nil, false, newFakeRefs(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *p.BrandID)
}

func TestResolveBrandCreatesPlaceholder(t *testing.T) {
	refs := newFakeRefs()
	p := &models.Product{}

	err := validate.ResolveBrand(json.Number("5"), true, refs, p)
	require.NoError(t, err)

	require.NotNil(t, p.Brand)
	assert.Equal(t, "Brand 5", p.Brand.Name)
	assert.Equal(t, "US", p.Brand.CountryCode)
	require.NotNil(t, p.BrandID)
	assert.Equal(t, int64(5), *p.BrandID)
}

func TestResolveBrandAttachesExisting(t *testing.T) {
	refs := newFakeRefs()
	refs.brands[7] = models.Brand{ID: 7, Name: "Acme", CountryCode: "GB"}
	p := &models.Product{}

	err := validate.ResolveBrand(json.Number("7"), true, refs, p)
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Brand.Name)
}

func TestResolveBrandNotAnInteger(t *testing.T) {
	err := validate.ResolveBrand("7", true, newFakeRefs(), &models.Product{})
	require.Error(t, err)
	assert.Equal(t, "Brand id '7' must be an integer, not 'string'", err.Error())
}

func TestResolveBrandConflictRetry(t *testing.T) {
	refs := newFakeRefs()
	refs.raceOnCreate = true
	p := &models.Product{}

	err := validate.ResolveBrand(json.Number("8"), true, refs, p)
	require.NoError(t, err)
	assert.Equal(t, "Raced", p.Brand.Name)
}
