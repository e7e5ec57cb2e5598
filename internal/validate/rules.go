package validate

import (
	"time"

	"github.com/01moynul/product-catalog/internal/models"
)

// Products expiring sooner than this are not worth stocking and are
// rejected at write time.
const expirationWindow = 30 * 24 * time.Hour

const featuredRatingBar = 8

// ValidateProduct applies the domain rules that only make sense once the
// product's relations are attached: the category-count bound, the
// expiration freshness window and the featured promotion.
//
// The featured flag is a one-way promotion. A product already featured
// (for example by a manual edit) stays featured regardless of rating.
func ValidateProduct(p *models.Product) error {
	if n := len(p.Categories); n < 1 || n > 5 {
		return &Error{Kind: ErrCategoryCount}
	}
	if p.ExpirationDate != nil && p.ExpirationDate.Before(time.Now().UTC().Add(expirationWindow)) {
		return &Error{Kind: ErrProductExpired}
	}
	if !p.Featured && p.Rating > featuredRatingBar {
		p.Featured = true
	}
	return nil
}
