package models

import (
	"time"

	"github.com/01moynul/product-catalog/internal/schema"
)

// Product is the model for the 'products' table.
// Nullable columns use pointers so JSON serialization stays clean.
type Product struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Rating         float64    `json:"rating" db:"rating"`
	Featured       bool       `json:"featured" db:"featured"`
	ItemsInStock   int64      `json:"items_in_stock" db:"items_in_stock"`
	ReceiptDate    *time.Time `json:"receipt_date" db:"receipt_date"`
	ExpirationDate *time.Time `json:"expiration_date" db:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	BrandID        *int64     `json:"-" db:"brand_id"`

	// Joins (not product columns, populated from the link tables)
	Brand      *Brand     `json:"brand,omitempty" db:"-"`
	Categories []Category `json:"categories" db:"-"`
}

// ProductSchema is the static descriptor for Product. The payload
// validator iterates this table instead of knowing any field by name,
// so adding a column means adding a row here plus an arm in
// ApplyField/FieldValues — nothing in the validator changes.
var ProductSchema = schema.Descriptor{
	Name: "product",
	Fields: []schema.Field{
		{Name: "id", Type: schema.KindInt, Identifier: true},
		{Name: "name", Type: schema.KindString, MaxLength: 50},
		{Name: "rating", Type: schema.KindFloat},
		{Name: "featured", Type: schema.KindBool, HasDefault: true},
		{Name: "items_in_stock", Type: schema.KindInt},
		{Name: "receipt_date", Type: schema.KindDate, Nullable: true},
		{Name: "expiration_date", Type: schema.KindDatetime, Nullable: true},
		{Name: "created_at", Type: schema.KindDatetime, HasDefault: true},
		{Name: "brand_id", Type: schema.KindInt, Nullable: true},
	},
}

func init() {
	if err := ProductSchema.Check(); err != nil {
		panic(err)
	}
}

// ApplyField assigns one validated value to its column. Values arrive in
// canonical form (int64, float64, string, bool, time.Time or nil), so the
// type assertions here are safe after validation.
func (p *Product) ApplyField(name string, value any) {
	switch name {
	case "name":
		p.Name = value.(string)
	case "rating":
		p.Rating = value.(float64)
	case "featured":
		p.Featured = value.(bool)
	case "items_in_stock":
		p.ItemsInStock = value.(int64)
	case "receipt_date":
		p.ReceiptDate = timePtr(value)
	case "expiration_date":
		p.ExpirationDate = timePtr(value)
	case "created_at":
		if t, ok := value.(time.Time); ok {
			p.CreatedAt = t
		}
	case "brand_id":
		p.BrandID = intPtr(value)
	}
}

// ApplyFields assigns every validated field in the map.
func (p *Product) ApplyFields(fields map[string]any) {
	for name, value := range fields {
		p.ApplyField(name, value)
	}
}

// FieldValues snapshots the product's non-identifier columns as a raw
// payload map. Update requests merge their body over this snapshot so the
// full pipeline revalidates the complete record, not just the patch.
func (p *Product) FieldValues() map[string]any {
	values := map[string]any{
		"name":            p.Name,
		"rating":          p.Rating,
		"featured":        p.Featured,
		"items_in_stock":  p.ItemsInStock,
		"receipt_date":    nil,
		"expiration_date": nil,
		"created_at":      p.CreatedAt.UTC(),
		"brand_id":        nil,
	}
	if p.ReceiptDate != nil {
		values["receipt_date"] = *p.ReceiptDate
	}
	if p.ExpirationDate != nil {
		values["expiration_date"] = *p.ExpirationDate
	}
	if p.BrandID != nil {
		values["brand_id"] = *p.BrandID
	}
	return values
}

func timePtr(value any) *time.Time {
	if t, ok := value.(time.Time); ok {
		return &t
	}
	return nil
}

func intPtr(value any) *int64 {
	if i, ok := value.(int64); ok {
		return &i
	}
	return nil
}
