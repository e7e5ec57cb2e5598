package validate

import (
	"errors"
	"fmt"

	"github.com/01moynul/product-catalog/internal/models"
	"github.com/01moynul/product-catalog/internal/schema"
	"github.com/01moynul/product-catalog/internal/store"
)

// ReferenceStore is the lookup/create capability the resolver needs over
// brand and category rows. In production it is a *store.Tx, so created
// placeholders are staged and commit together with the owning product.
type ReferenceStore interface {
	GetCategory(id int64) (*models.Category, error)
	CreateCategory(c *models.Category) error
	GetBrand(id int64) (*models.Brand, error)
	CreateBrand(b *models.Brand) error
}

// ResolveCategories resolves the raw 'categories' value to attached
// Category rows. Ids are deduplicated in first-seen order; an unknown id
// gets a placeholder row created alongside the product.
func ResolveCategories(raw any, refs ReferenceStore, p *models.Product) error {
	list, ok := raw.([]any)
	if !ok {
		return &Error{Kind: ErrNotAList, Field: "categories"}
	}

	seen := make(map[int64]bool, len(list))
	for _, entry := range list {
		id, ok := schema.AsInt(entry)
		if !ok {
			return &Error{Kind: ErrNotAnInteger, Label: "Category", Value: entry}
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		category, err := getOrCreateCategory(refs, id)
		if err != nil {
			return err
		}
		p.Categories = append(p.Categories, *category)
	}
	return nil
}

// ResolveBrand links the product to the brand named by the raw
// 'brand_id' value. The brand reference is optional: when the key was
// absent from the input the product's brand stays as it is.
func ResolveBrand(raw any, present bool, refs ReferenceStore, p *models.Product) error {
	if !present {
		return nil
	}
	id, ok := schema.AsInt(raw)
	if !ok {
		return &Error{Kind: ErrNotAnInteger, Label: "Brand id", Value: raw}
	}

	brand, err := getOrCreateBrand(refs, id)
	if err != nil {
		return err
	}
	p.Brand = brand
	p.BrandID = &brand.ID
	return nil
}

// getOrCreateCategory looks the id up and creates a placeholder when it
// is missing. Two concurrent requests can both decide to create the same
// id; the loser's insert fails with ErrConflict and the row the winner
// created is fetched instead.
func getOrCreateCategory(refs ReferenceStore, id int64) (*models.Category, error) {
	category, err := refs.GetCategory(id)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up category %d: %w", id, err)
	}

	category = models.PlaceholderCategory(id)
	switch err := refs.CreateCategory(category); {
	case err == nil:
		return category, nil
	case errors.Is(err, store.ErrConflict):
		category, err = refs.GetCategory(id)
		if err != nil {
			return nil, fmt.Errorf("retry category %d after concurrent create: %w", id, err)
		}
		return category, nil
	default:
		return nil, fmt.Errorf("create category %d: %w", id, err)
	}
}

func getOrCreateBrand(refs ReferenceStore, id int64) (*models.Brand, error) {
	brand, err := refs.GetBrand(id)
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up brand %d: %w", id, err)
	}

	brand = models.PlaceholderBrand(id)
	switch err := refs.CreateBrand(brand); {
	case err == nil:
		return brand, nil
	case errors.Is(err, store.ErrConflict):
		brand, err = refs.GetBrand(id)
		if err != nil {
			return nil, fmt.Errorf("retry brand %d after concurrent create: %w", id, err)
		}
		return brand, nil
	default:
		return nil, fmt.Errorf("create brand %d: %w", id, err)
	}
}
