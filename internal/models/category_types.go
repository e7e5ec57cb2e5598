package models

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Category defines the struct for the 'categories' table
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"-" db:"slug"`
}

// PlaceholderCategory builds the stand-in row created when a product
// references a category id that does not exist yet.
func PlaceholderCategory(id int64) *Category {
	name := fmt.Sprintf("Category %d", id)
	return &Category{
		ID:   id,
		Name: name,
		Slug: slug.Make(name),
	}
}
