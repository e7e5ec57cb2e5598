package routes

import (
	"net/http"

	"github.com/01moynul/product-catalog/internal/handlers"
	"github.com/01moynul/product-catalog/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows browser frontends to talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(CORSMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Product Routes ---
	router.GET("/products", h.GetProducts)
	router.GET("/products/:product_id", h.GetProductByID)
	router.POST("/products", h.CreateProduct)
	router.PUT("/products/:product_id", h.UpdateProduct)
	router.DELETE("/products/:product_id", h.DeleteProduct)

	// --- Reference Data Routes ---
	router.GET("/brands", h.GetAllBrands)
	router.GET("/categories", h.GetAllCategories)

	return router
}
