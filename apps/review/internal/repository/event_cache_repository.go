package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// EventCacheRepository stores raw Etherscan responses in postgres, one row
// per address and category with the full result set as JSONB. It implements
// the cache.Cache interface.
type EventCacheRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewEventCacheRepository(db *sql.DB, logger *zap.Logger) *EventCacheRepository {
	return &EventCacheRepository{db: db, logger: logger}
}

// Get returns the cached events for an address and category.
func (r *EventCacheRepository) Get(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM raw_event_cache
		WHERE address = $1 AND category = $2
	`, address, string(cat)).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query event cache: %w", err)
	}

	var events []model.RawEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		return nil, false, fmt.Errorf("failed to parse cached events: %w", err)
	}

	r.logger.Debug("Cache hit",
		zap.String("address", address),
		zap.String("category", string(cat)),
		zap.Int("count", len(events)))
	return events, true, nil
}

// Put stores the events for an address and category, replacing any previous
// row.
func (r *EventCacheRepository) Put(ctx context.Context, address string, cat model.Category, events []model.RawEvent) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO raw_event_cache (address, category, payload, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (address, category) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = NOW()
	`, address, string(cat), payload)

	if err != nil {
		return fmt.Errorf("failed to store event cache entry: %w", err)
	}

	r.logger.Info("Cached events",
		zap.String("address", address),
		zap.String("category", string(cat)),
		zap.Int("count", len(events)))
	return nil
}
