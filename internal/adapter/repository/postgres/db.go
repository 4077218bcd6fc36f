// Package postgres implements the domain repositories on database/sql.
// Decimals travel as strings in both directions so money and share values
// never pass through float64.
package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	// maxOpenConns bounds the pool; the engine serializes mutations per
	// service, so a small pool covers the read load comfortably
	maxOpenConns = 10
	maxIdleConns = 5
	// connMaxIdleTime drops idle connections before typical LB/firewall
	// idle timeouts cut them mid-query
	connMaxIdleTime = 5 * time.Minute
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
}

// NewDB opens a connection pool and verifies it with a ping.
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=sling sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	return db.DB.Close()
}
