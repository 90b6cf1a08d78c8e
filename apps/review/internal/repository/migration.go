package repository

import (
	"database/sql"
	"fmt"
)

// InitMigration initializes the database. In production, this would use a proper migration
// library like go-migrate
func InitMigration(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS raw_event_cache (
			address VARCHAR(42) NOT NULL,
			category VARCHAR(10) NOT NULL,
			payload JSONB NOT NULL,
			fetched_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (address, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_event_cache_address ON raw_event_cache (address)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}
