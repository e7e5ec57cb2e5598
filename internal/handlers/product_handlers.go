package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/product-catalog/internal/models"
	"github.com/01moynul/product-catalog/internal/store"
	"github.com/01moynul/product-catalog/internal/validate"
	"github.com/gin-gonic/gin"
)

// decodeBody reads the request body into a raw payload map. Numbers are
// kept as json.Number so the validator can tell integer tokens from
// float tokens. A missing, malformed or empty body counts as empty.
func decodeBody(c *gin.Context) (map[string]any, bool) {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()

	var data map[string]any
	if err := decoder.Decode(&data); err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// respondError maps pipeline failures to the client contract: validation
// errors are 400s carrying their own message, a vanished record is a
// 404, and anything else is an opaque internal error with the cause
// kept in the server log.
func (h *Handlers) respondError(c *gin.Context, err error) {
	if verr, ok := validate.AsError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	log.Printf("request %s: %v", c.GetString("requestID"), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal database error"})
}

// GetProducts is the handler for GET /products
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Store.ListProducts()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": products})
}

// GetProductByID is the handler for GET /products/:product_id
func (h *Handlers) GetProductByID(c *gin.Context) {
	id, ok := validate.ParseID(c.Param("product_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong 'product_id' parameter type, must be 'int'"})
		return
	}

	product, err := h.Store.GetProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": product})
}

// CreateProduct is the handler for POST /products. It runs the full
// pipeline: payload validation, relationship resolution, business rules,
// then a single atomic commit of the product and any placeholder
// reference rows created along the way.
func (h *Handlers) CreateProduct(c *gin.Context) {
	data, ok := decodeBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty request"})
		return
	}

	fields, err := validate.ValidatePayload(data, &models.ProductSchema)
	if err != nil {
		h.respondError(c, err)
		return
	}

	product := &models.Product{}
	product.ApplyFields(fields)

	// The validator only covers product columns; the relations are
	// resolved separately, and categories are mandatory on create.
	rawCategories, hasCategories := data["categories"]
	if !hasCategories {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing categories key"})
		return
	}

	tx, err := h.Store.Begin()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer tx.Rollback()

	if err := validate.ResolveCategories(rawCategories, tx, product); err != nil {
		h.respondError(c, err)
		return
	}
	rawBrand, hasBrand := data["brand_id"]
	if err := validate.ResolveBrand(rawBrand, hasBrand, tx, product); err != nil {
		h.respondError(c, err)
		return
	}
	if err := validate.ValidateProduct(product); err != nil {
		h.respondError(c, err)
		return
	}

	if err := tx.InsertProduct(product); err != nil {
		h.respondError(c, err)
		return
	}
	if err := tx.ReplaceCategories(product.ID, product.Categories); err != nil {
		h.respondError(c, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.Store.GetProduct(product.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": created})
}

// UpdateProduct is the handler for PUT /products/:product_id. The body
// is merged over a snapshot of the stored record and the merged view
// goes through the same pipeline as a create, so a partial update only
// touches the supplied fields.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	data, ok := decodeBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty request"})
		return
	}

	id, ok := validate.ParseID(c.Param("product_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong 'product_id' parameter type, must be 'int'"})
		return
	}

	product, err := h.Store.GetProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	merged := product.FieldValues()
	for key, value := range data {
		merged[key] = value
	}
	fields, err := validate.ValidatePayload(merged, &models.ProductSchema)
	if err != nil {
		h.respondError(c, err)
		return
	}
	product.ApplyFields(fields)

	tx, err := h.Store.Begin()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer tx.Rollback()

	// Relations change only when the body names them.
	rawCategories, hasCategories := data["categories"]
	if hasCategories {
		product.Categories = nil
		if err := validate.ResolveCategories(rawCategories, tx, product); err != nil {
			h.respondError(c, err)
			return
		}
	}
	rawBrand, hasBrand := data["brand_id"]
	if err := validate.ResolveBrand(rawBrand, hasBrand, tx, product); err != nil {
		h.respondError(c, err)
		return
	}
	if err := validate.ValidateProduct(product); err != nil {
		h.respondError(c, err)
		return
	}

	// ValidateProduct may have promoted the featured flag; persist the
	// flag the record ends up with, not the one the body carried.
	fields["featured"] = product.Featured

	if err := tx.UpdateProductFields(id, fields); err != nil {
		h.respondError(c, err)
		return
	}
	if hasCategories {
		if err := tx.ReplaceCategories(id, product.Categories); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.Store.GetProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": updated})
}

// DeleteProduct is the handler for DELETE /products/:product_id.
// Deletion cascades the category links only; brand and category rows
// are shared reference data and survive.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := validate.ParseID(c.Param("product_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong 'product_id' parameter type, must be 'int'"})
		return
	}

	deleted, err := h.Store.DeleteProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "Product deleted"})
}
