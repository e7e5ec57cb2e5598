package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/product-catalog/internal/models"
)

// Tx stages the writes of one request. Placeholder brands/categories
// created while resolving references ride the same transaction as the
// product, so either everything commits or nothing does.
type Tx struct {
	tx *sql.Tx
}

func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback is safe to defer; rolling back after a commit is a no-op.
func (t *Tx) Rollback() {
	_ = t.tx.Rollback()
}

// InsertProduct stages the product row and fills in the generated id.
// A zero CreatedAt gets the store default.
func (t *Tx) InsertProduct(p *models.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	result, err := t.tx.Exec(`
		INSERT INTO products
		(name, rating, featured, items_in_stock, receipt_date, expiration_date, created_at, brand_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Rating, p.Featured, p.ItemsInStock,
		p.ReceiptDate, p.ExpirationDate, p.CreatedAt, p.BrandID,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return nil
}

// UpdateProductFields rewrites only the supplied columns, building the
// SET clause dynamically in schema order.
func (t *Tx) UpdateProductFields(id int64, fields map[string]any) error {
	var set []string
	var args []any
	for _, f := range models.ProductSchema.Fields {
		if f.Identifier {
			continue
		}
		value, ok := fields[f.Name]
		if !ok {
			continue
		}
		set = append(set, f.Name+" = ?")
		args = append(args, value)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = ?", strings.Join(set, ", "))
	if _, err := t.tx.Exec(query, args...); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

// ReplaceCategories rewrites the product's category links to exactly the
// given set, keeping attachment order in the position column.
func (t *Tx) ReplaceCategories(productID int64, categories []models.Category) error {
	if _, err := t.tx.Exec(`DELETE FROM product_categories WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("clear category links: %w", err)
	}
	for i, c := range categories {
		_, err := t.tx.Exec(
			`INSERT INTO product_categories (product_id, category_id, position) VALUES (?, ?, ?)`,
			productID, c.ID, i,
		)
		if err != nil {
			return fmt.Errorf("link category %d: %w", c.ID, err)
		}
	}
	return nil
}

// GetCategory looks a category up within the transaction.
func (t *Tx) GetCategory(id int64) (*models.Category, error) {
	var c models.Category
	err := t.tx.QueryRow(`SELECT id, name, slug FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category %d: %w", id, err)
	}
	return &c, nil
}

// CreateCategory stages a category row with a caller-supplied id.
// A duplicate key comes back as ErrConflict so the caller can fall back
// to the row a concurrent request created.
func (t *Tx) CreateCategory(c *models.Category) error {
	_, err := t.tx.Exec(`INSERT INTO categories (id, name, slug) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Slug)
	if err != nil {
		if isConflict(err) {
			return fmt.Errorf("category %d: %w", c.ID, ErrConflict)
		}
		return fmt.Errorf("insert category %d: %w", c.ID, err)
	}
	return nil
}

// GetBrand looks a brand up within the transaction.
func (t *Tx) GetBrand(id int64) (*models.Brand, error) {
	var b models.Brand
	err := t.tx.QueryRow(`SELECT id, name, country_code, slug FROM brands WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.CountryCode, &b.Slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query brand %d: %w", id, err)
	}
	return &b, nil
}

// CreateBrand stages a brand row with a caller-supplied id.
func (t *Tx) CreateBrand(b *models.Brand) error {
	_, err := t.tx.Exec(`INSERT INTO brands (id, name, country_code, slug) VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, b.CountryCode, b.Slug)
	if err != nil {
		if isConflict(err) {
			return fmt.Errorf("brand %d: %w", b.ID, ErrConflict)
		}
		return fmt.Errorf("insert brand %d: %w", b.ID, err)
	}
	return nil
}
