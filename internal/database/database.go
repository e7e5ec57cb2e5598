package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// OpenDB initializes and returns the primary connection pool.
// DB_DSN selects a MySQL instance; when it is unset we fall back to a
// local SQLite file so the API runs with zero setup in development.
func OpenDB() (*sql.DB, string, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "catalog.db"
		}
		log.Println("DB_DSN not set, using local SQLite database at", path)
		db, err := OpenSQLite(path)
		return db, "sqlite", err
	}

	db, err := OpenMySQL(dsn)
	return db, "mysql", err
}

// OpenMySQL creates and configures a MySQL connection pool and verifies
// it with a ping. The DSN needs parseTime=true so DATE/DATETIME columns
// scan into time.Time.
func OpenMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// OpenSQLite opens (or creates) a SQLite database at path.
// Pass ":memory:" for the throwaway store the tests use.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer — limit to a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
