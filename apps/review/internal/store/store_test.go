package store

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// fakeFetcher counts upstream calls and serves canned events per category.
type fakeFetcher struct {
	events map[model.Category][]model.RawEvent
	calls  int
	err    error
}

func (f *fakeFetcher) AccountEvents(_ context.Context, _ string, cat model.Category) ([]model.RawEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	events := f.events[cat]
	for i := range events {
		events[i].Category = cat
	}
	return events, nil
}

// memoryCache is a map-backed Cache for tests.
type memoryCache struct {
	data map[string][]model.RawEvent
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]model.RawEvent)}
}

func (m *memoryCache) key(address string, cat model.Category) string {
	return address + ":" + string(cat)
}

func (m *memoryCache) Get(_ context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error) {
	events, ok := m.data[m.key(address, cat)]
	return events, ok, nil
}

func (m *memoryCache) Put(_ context.Context, address string, cat model.Category, events []model.RawEvent) error {
	m.data[m.key(address, cat)] = events
	return nil
}

func TestEventsFetchesOnMissAndCachesResult(t *testing.T) {
	fetcher := &fakeFetcher{events: map[model.Category][]model.RawEvent{
		model.CategoryNormal: {{Hash: "0xabc", TimeStamp: "100"}},
	}}
	s := New(fetcher, newMemoryCache(), zap.NewNop())
	ctx := context.Background()

	events, err := s.Events(ctx, testAddress, model.CategoryNormal)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 || events[0].Category != model.CategoryNormal {
		t.Fatalf("unexpected events: %+v", events)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", fetcher.calls)
	}

	// Second call must be served from the cache.
	if _, err := s.Events(ctx, testAddress, model.CategoryNormal); err != nil {
		t.Fatalf("Events failed on cache hit: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("expected cached result, upstream was called %d times", fetcher.calls)
	}
}

func TestEventsPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("upstream down")}
	s := New(fetcher, newMemoryCache(), zap.NewNop())

	if _, err := s.Events(context.Background(), testAddress, model.CategoryNormal); err == nil {
		t.Fatal("expected error when upstream fails and cache is empty")
	}
}

func TestLoadFetchesAllCategories(t *testing.T) {
	fetcher := &fakeFetcher{events: map[model.Category][]model.RawEvent{
		model.CategoryNormal:  {{Hash: "0x1", TimeStamp: "100"}},
		model.CategoryERC20:   {{Hash: "0x2", TimeStamp: "200"}},
		model.CategoryERC1155: {{Hash: "0x2", TimeStamp: "200"}},
	}}
	s := New(fetcher, newMemoryCache(), zap.NewNop())

	snapshot, err := s.Load(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fetcher.calls != len(model.Categories) {
		t.Errorf("expected %d upstream calls, got %d", len(model.Categories), fetcher.calls)
	}
	if snapshot.Address() != testAddress {
		t.Errorf("Address = %q, want %q", snapshot.Address(), testAddress)
	}
	if got := snapshot.NormalByHash("0x1"); len(got) != 1 {
		t.Errorf("NormalByHash(0x1) = %d events, want 1", len(got))
	}
	if got := snapshot.TokensByHash("0x2"); len(got) != 2 {
		t.Errorf("TokensByHash(0x2) = %d events, want 2 (erc20 + erc1155)", len(got))
	}
}

func TestAccountEventsIndexes(t *testing.T) {
	byCategory := map[model.Category][]model.RawEvent{
		model.CategoryNormal: {
			{Hash: "0xaaa", Category: model.CategoryNormal},
		},
		model.CategoryInternal: {
			{Hash: "0xaaa", Category: model.CategoryInternal},
			{Hash: "0xbbb", Category: model.CategoryInternal},
		},
		model.CategoryERC20: {
			{Hash: "0xaaa", TokenSymbol: "DAI", Category: model.CategoryERC20},
		},
		model.CategoryERC721: {
			{Hash: "0xaaa", TokenSymbol: "PUNK", Category: model.CategoryERC721},
		},
	}
	snapshot := NewAccountEvents(testAddress, byCategory)

	if got := snapshot.InternalByHash("0xbbb"); len(got) != 1 {
		t.Errorf("InternalByHash(0xbbb) = %d, want 1", len(got))
	}
	if got := snapshot.InternalByHash("0xmissing"); got != nil {
		t.Errorf("InternalByHash(missing) = %+v, want nil", got)
	}

	tokens := snapshot.TokensByHash("0xaaa")
	if len(tokens) != 2 {
		t.Fatalf("TokensByHash(0xaaa) = %d, want 2", len(tokens))
	}
	// Token categories merge in category order: erc20 before erc721.
	if tokens[0].TokenSymbol != "DAI" || tokens[1].TokenSymbol != "PUNK" {
		t.Errorf("unexpected token order: %+v", tokens)
	}
}
