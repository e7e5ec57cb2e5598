package handlers

import (
	"github.com/01moynul/product-catalog/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store *store.Store
}
