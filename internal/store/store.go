package store

import (
	"database/sql"
	"fmt"

	"github.com/01moynul/product-catalog/internal/models"
)

// Dialect selects the SQL flavor for the few statements that differ
// between the production MySQL pool and the SQLite store used by tests
// and local development.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// Store is the record store for the catalog. Reads run on the pool;
// writes go through a Tx so a product and any reference rows created
// for it commit atomically or not at all.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Migrate creates the catalog tables when they do not exist yet.
func (s *Store) Migrate() error {
	productID := "BIGINT PRIMARY KEY AUTO_INCREMENT"
	if s.dialect == DialectSQLite {
		productID = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS products (
			id %s,
			name VARCHAR(50) NOT NULL,
			rating DOUBLE PRECISION NOT NULL,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			items_in_stock BIGINT NOT NULL,
			receipt_date DATE NULL,
			expiration_date DATETIME NULL,
			created_at DATETIME NOT NULL,
			brand_id BIGINT NULL
		)`, productID),
		`
		CREATE TABLE IF NOT EXISTS brands (
			id BIGINT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			country_code VARCHAR(10) NOT NULL,
			slug VARCHAR(80) NOT NULL
		)`,
		`
		CREATE TABLE IF NOT EXISTS categories (
			id BIGINT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			slug VARCHAR(80) NOT NULL
		)`,
		`
		CREATE TABLE IF NOT EXISTS product_categories (
			product_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			position INT NOT NULL,
			PRIMARY KEY (product_id, category_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// GetProduct fetches one product with its brand and its categories in
// attachment order. Returns ErrNotFound when the id matches nothing.
func (s *Store) GetProduct(id int64) (*models.Product, error) {
	row := s.db.QueryRow(`
		SELECT id, name, rating, featured, items_in_stock,
		       receipt_date, expiration_date, created_at, brand_id
		FROM products WHERE id = ?`, id)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}

	if err := s.loadRelations(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts fetches every product, relations included.
func (s *Store) ListProducts() ([]*models.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, rating, featured, items_in_stock,
		       receipt_date, expiration_date, created_at, brand_id
		FROM products ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	for _, product := range products {
		if err := s.loadRelations(product); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// DeleteProduct removes the product and its category links. The brand
// and category rows themselves are shared reference data and stay.
// The returned bool reports whether a row was actually deleted.
func (s *Store) DeleteProduct(id int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM product_categories WHERE product_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete category links: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return affected > 0, nil
}

// ListBrands fetches every brand, name order.
func (s *Store) ListBrands() ([]models.Brand, error) {
	rows, err := s.db.Query(`SELECT id, name, country_code, slug FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CountryCode, &b.Slug); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// ListCategories fetches every category, name order.
func (s *Store) ListCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, slug FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) loadRelations(p *models.Product) error {
	if p.BrandID != nil {
		var b models.Brand
		err := s.db.QueryRow(`SELECT id, name, country_code, slug FROM brands WHERE id = ?`, *p.BrandID).
			Scan(&b.ID, &b.Name, &b.CountryCode, &b.Slug)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("query brand %d: %w", *p.BrandID, err)
		}
		if err == nil {
			p.Brand = &b
		}
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = ?
		ORDER BY pc.position ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("query categories of product %d: %w", p.ID, err)
	}
	defer rows.Close()

	p.Categories = []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return fmt.Errorf("scan category row: %w", err)
		}
		p.Categories = append(p.Categories, c)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var receipt, expiration sql.NullTime
	var brandID sql.NullInt64

	err := row.Scan(&p.ID, &p.Name, &p.Rating, &p.Featured, &p.ItemsInStock,
		&receipt, &expiration, &p.CreatedAt, &brandID)
	if err != nil {
		return nil, err
	}
	if receipt.Valid {
		t := receipt.Time.UTC()
		p.ReceiptDate = &t
	}
	if expiration.Valid {
		t := expiration.Time.UTC()
		p.ExpirationDate = &t
	}
	if brandID.Valid {
		p.BrandID = &brandID.Int64
	}
	return &p, nil
}
