package main

import (
	"log"
	"os"

	"github.com/01moynul/product-catalog/internal/database"
	"github.com/01moynul/product-catalog/internal/handlers"
	"github.com/01moynul/product-catalog/internal/routes"
	"github.com/01moynul/product-catalog/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection ---
	db, dialect, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	catalog := store.New(db, store.Dialect(dialect))
	if err := catalog.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store: catalog,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting product-catalog API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
