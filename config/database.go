package config

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the SQLite database, verifies the connection and makes sure
// the schema exists.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func createTables(db *sql.DB) error {
	// Raw SQL commands to construct the schema natively
	userTableQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		api_calls INTEGER DEFAULT 0,
		reset_token_hash VARCHAR(255) NULL,
		reset_token_expiry DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	statsTableQuery := `
	CREATE TABLE IF NOT EXISTS api_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		method VARCHAR(10) NOT NULL,
		endpoint VARCHAR(255) NOT NULL,
		requests INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (method, endpoint)
	);`

	if _, err := db.Exec(userTableQuery); err != nil {
		return fmt.Errorf("failed to execute raw SQL for users table: %w", err)
	}

	if _, err := db.Exec(statsTableQuery); err != nil {
		return fmt.Errorf("failed to execute raw SQL for api_stats table: %w", err)
	}

	return nil
}
