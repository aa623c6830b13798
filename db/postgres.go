package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Initialize opens the pooled connection and verifies it. The handle is
// returned to the caller and passed explicitly into every component that
// needs it; there is no package-level connection.
func Initialize(connStr string) (*sql.DB, error) {
	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err = database.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return database, nil
}
