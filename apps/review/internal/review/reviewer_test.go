package review

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/addressbook"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
	"github.com/mikgur/eth-address-review/apps/review/internal/store"
)

const (
	selfAddr    = "0x1111111111111111111111111111111111111111"
	aliceAddr   = "0x4444444444444444444444444444444444444444"
	vaultAddr   = "0x2222222222222222222222222222222222222222"
	unknownAddr = "0x9999999999999999999999999999999999999999"
	proxyAddr   = "0x5555555555555555555555555555555555555555"
)

// fakeFetcher serves canned events per address and category.
type fakeFetcher struct {
	events map[string]map[model.Category][]model.RawEvent
}

func (f *fakeFetcher) AccountEvents(_ context.Context, address string, cat model.Category) ([]model.RawEvent, error) {
	events := f.events[address][cat]
	for i := range events {
		events[i].Category = cat
	}
	return events, nil
}

type memoryCache struct {
	data map[string][]model.RawEvent
}

func (m *memoryCache) Get(_ context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error) {
	events, ok := m.data[address+":"+string(cat)]
	return events, ok, nil
}

func (m *memoryCache) Put(_ context.Context, address string, cat model.Category, events []model.RawEvent) error {
	m.data[address+":"+string(cat)] = events
	return nil
}

func TestReviewerRun(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string]map[model.Category][]model.RawEvent{
		selfAddr: {
			model.CategoryNormal: {
				// Plain transfer out.
				{Hash: "0xplain", TimeStamp: "100", From: selfAddr, To: aliceAddr,
					Value: "2000000000000000000", Input: "0x"},
				// Call to a contract outside the registry.
				{Hash: "0xnew", TimeStamp: "300", From: selfAddr, To: unknownAddr,
					Value: "0", Input: "0xdeadbeef", FunctionName: "mystery()"},
				// Call to a known contract.
				{Hash: "0xcall", TimeStamp: "400", From: selfAddr, To: vaultAddr,
					Value: "0", Input: "0x1234", FunctionName: "join(uint256 wad)"},
			},
			model.CategoryERC20: {
				// External airdrop, no normal event for this hash.
				{Hash: "0xdrop", TimeStamp: "200", From: aliceAddr, To: selfAddr,
					Value: "1500000", TokenDecimal: "6", TokenSymbol: "USDC"},
				{Hash: "0xcall", TimeStamp: "400", From: selfAddr, To: vaultAddr,
					Value: "3000000000000000000", TokenDecimal: "18", TokenSymbol: "DAI"},
			},
		},
		proxyAddr: {},
	}}

	book := addressbook.NewBook(map[string]string{
		selfAddr:  "Main Wallet",
		aliceAddr: "Alice",
		vaultAddr: "Maker: Vault",
		proxyAddr: "DS Proxy",
	})
	contracts := addressbook.NewContracts([]addressbook.Contract{
		{Name: "Maker: Vault", Address: common.HexToAddress(vaultAddr)},
	})

	s := store.New(fetcher, &memoryCache{data: make(map[string][]model.RawEvent)}, zap.NewNop())
	reviewer := NewReviewer(s, book, contracts, selfAddr, proxyAddr, zap.NewNop())

	result, err := reviewer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Ledger) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(result.Ledger))
	}
	if result.Ledger[0].Hash != "0xplain" || result.Ledger[3].Hash != "0xcall" {
		t.Errorf("ledger not chronological: %+v", result.Ledger)
	}

	// The unknown-contract call is surfaced, not classified.
	if len(result.Unknown) != 1 || result.Unknown[0].Hash != "0xnew" {
		t.Fatalf("expected 0xnew in Unknown, got %+v", result.Unknown)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("expected 3 classified transactions, got %d", len(result.Transactions))
	}

	byHash := make(map[string]model.TransactionResult)
	for _, tx := range result.Transactions {
		byHash[tx.Hash] = tx
	}

	plain := byHash["0xplain"]
	if len(plain.EthMovements) != 1 || plain.EthMovements[0].Amount != "2" {
		t.Errorf("unexpected plain transfer: %+v", plain)
	}

	drop := byHash["0xdrop"]
	if !drop.ExternalInbound {
		t.Error("expected 0xdrop to be external inbound")
	}
	if len(drop.TokenMovements) != 1 || drop.TokenMovements[0].Amount != "1.5" {
		t.Errorf("unexpected airdrop movements: %+v", drop.TokenMovements)
	}

	call := byHash["0xcall"]
	if call.ContractName != "Maker: Vault" || call.FunctionName != "join" {
		t.Errorf("unexpected contract call: %+v", call)
	}
	if len(call.TokenMovements) != 1 || call.TokenMovements[0].Amount != "3" {
		t.Errorf("unexpected contract call movements: %+v", call.TokenMovements)
	}
}

func TestReviewerRunWithoutProxy(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string]map[model.Category][]model.RawEvent{
		selfAddr: {
			model.CategoryNormal: {
				{Hash: "0xplain", TimeStamp: "100", From: selfAddr, To: aliceAddr,
					Value: "1000000000000000000", Input: "0x"},
			},
		},
	}}
	book := addressbook.NewBook(map[string]string{selfAddr: "Main Wallet"})
	contracts := addressbook.NewContracts(nil)

	s := store.New(fetcher, &memoryCache{data: make(map[string][]model.RawEvent)}, zap.NewNop())
	reviewer := NewReviewer(s, book, contracts, selfAddr, "", zap.NewNop())

	result, err := reviewer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(result.Transactions))
	}
}
