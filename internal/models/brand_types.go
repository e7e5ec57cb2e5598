package models

import (
	"fmt"

	"github.com/gosimple/slug"
)

// DefaultCountryCode is assigned to brands created as placeholders for
// ids that did not exist yet.
const DefaultCountryCode = "US"

// Brand defines the struct for the 'brands' table
type Brand struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	CountryCode string `json:"country_code" db:"country_code"`
	Slug        string `json:"-" db:"slug"`
}

// PlaceholderBrand builds the stand-in row created when a product
// references a brand id that does not exist yet.
func PlaceholderBrand(id int64) *Brand {
	name := fmt.Sprintf("Brand %d", id)
	return &Brand{
		ID:          id,
		Name:        name,
		CountryCode: DefaultCountryCode,
		Slug:        slug.Make(name),
	}
}
