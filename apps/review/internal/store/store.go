// Package store is the raw event store: a fetch-or-cache accessor over the
// Etherscan client plus indexed per-address snapshots of the fetched events.
package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/cache"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// Fetcher retrieves events from the upstream explorer API. Satisfied by
// etherscan.Client.
type Fetcher interface {
	AccountEvents(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, error)
}

// Store returns raw events for an address and category, consulting the cache
// first and filling it on a miss. Fetching is idempotent from the caller's
// perspective.
type Store struct {
	fetcher Fetcher
	cache   cache.Cache
	logger  *zap.Logger
}

func New(fetcher Fetcher, c cache.Cache, logger *zap.Logger) *Store {
	return &Store{fetcher: fetcher, cache: c, logger: logger}
}

// Events returns all events of one category for an address. Every returned
// event carries its category.
func (s *Store) Events(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, error) {
	events, ok, err := s.cache.Get(ctx, address, cat)
	if err != nil {
		// A broken cache entry should not block the review; refetch.
		s.logger.Warn("Cache read failed, refetching",
			zap.String("address", address),
			zap.String("category", string(cat)),
			zap.Error(err))
	} else if ok {
		for i := range events {
			events[i].Category = cat
		}
		return events, nil
	}

	events, err = s.fetcher.AccountEvents(ctx, address, cat)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, address, cat, events); err != nil {
		s.logger.Warn("Failed to cache events",
			zap.String("address", address),
			zap.String("category", string(cat)),
			zap.Error(err))
	}
	return events, nil
}

// Load fetches all five categories for an address and returns an indexed
// snapshot.
func (s *Store) Load(ctx context.Context, address string) (*AccountEvents, error) {
	byCategory := make(map[model.Category][]model.RawEvent, len(model.Categories))
	for _, cat := range model.Categories {
		events, err := s.Events(ctx, address, cat)
		if err != nil {
			return nil, err
		}
		byCategory[cat] = events
	}
	return NewAccountEvents(address, byCategory), nil
}

// AccountEvents is an immutable snapshot of all raw events for one address,
// indexed by hash so per-transaction lookups avoid repeated linear scans.
type AccountEvents struct {
	address    string
	byCategory map[model.Category][]model.RawEvent

	normalByHash   map[string][]model.RawEvent
	internalByHash map[string][]model.RawEvent
	tokensByHash   map[string][]model.RawEvent
}

// NewAccountEvents builds the per-hash indexes once. Token events from all
// three token categories are merged in category order (erc20, erc721,
// erc1155), preserving retrieval order within a category.
func NewAccountEvents(address string, byCategory map[model.Category][]model.RawEvent) *AccountEvents {
	a := &AccountEvents{
		address:        address,
		byCategory:     byCategory,
		normalByHash:   make(map[string][]model.RawEvent),
		internalByHash: make(map[string][]model.RawEvent),
		tokensByHash:   make(map[string][]model.RawEvent),
	}
	for _, ev := range byCategory[model.CategoryNormal] {
		a.normalByHash[ev.Hash] = append(a.normalByHash[ev.Hash], ev)
	}
	for _, ev := range byCategory[model.CategoryInternal] {
		a.internalByHash[ev.Hash] = append(a.internalByHash[ev.Hash], ev)
	}
	for _, cat := range model.TokenCategories {
		for _, ev := range byCategory[cat] {
			a.tokensByHash[ev.Hash] = append(a.tokensByHash[ev.Hash], ev)
		}
	}
	return a
}

// Address returns the account the snapshot was loaded for.
func (a *AccountEvents) Address() string { return a.address }

// ByCategory returns the full event lists keyed by category.
func (a *AccountEvents) ByCategory() map[model.Category][]model.RawEvent { return a.byCategory }

// NormalByHash returns the normal-category events sharing a hash.
func (a *AccountEvents) NormalByHash(hash string) []model.RawEvent { return a.normalByHash[hash] }

// InternalByHash returns the internal-category events sharing a hash.
func (a *AccountEvents) InternalByHash(hash string) []model.RawEvent { return a.internalByHash[hash] }

// TokensByHash returns the token-category events sharing a hash.
func (a *AccountEvents) TokensByHash(hash string) []model.RawEvent { return a.tokensByHash[hash] }
