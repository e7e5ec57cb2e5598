package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAllBrands is the handler for GET /brands
func (h *Handlers) GetAllBrands(c *gin.Context) {
	brands, err := h.Store.ListBrands()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": brands})
}

// GetAllCategories is the handler for GET /categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": categories})
}
