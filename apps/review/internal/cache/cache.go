// Package cache stores raw Etherscan responses so a review run does not
// refetch data it has already seen. Backends are interchangeable; the store
// only sees Get and Put.
package cache

import (
	"context"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// Cache is a per-address, per-category store of raw events.
type Cache interface {
	// Get returns the cached events and whether the key was present. A miss
	// is not an error.
	Get(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error)

	// Put stores the events for an address and category, replacing any
	// previous value.
	Put(ctx context.Context, address string, cat model.Category, events []model.RawEvent) error
}
