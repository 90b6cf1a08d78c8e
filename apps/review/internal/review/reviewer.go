// Package review runs one full pass over an address pair: load raw events,
// build the ledger, classify every transaction.
package review

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/addressbook"
	"github.com/mikgur/eth-address-review/apps/review/internal/classifier"
	"github.com/mikgur/eth-address-review/apps/review/internal/ledger"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
	"github.com/mikgur/eth-address-review/apps/review/internal/store"
)

// Review is the immutable outcome of one run. Unknown holds the raw normal
// events of transactions that called contracts outside the registry; they
// are surfaced for manual triage instead of being classified.
type Review struct {
	Address      string
	ProxyAddress string
	Ledger       []model.LedgerEntry
	Transactions []model.TransactionResult
	Unknown      []model.RawEvent
}

// Reviewer wires the store, address book and classifier for one address
// pair.
type Reviewer struct {
	store        *store.Store
	book         *addressbook.Book
	contracts    *addressbook.Contracts
	address      string
	proxyAddress string
	logger       *zap.Logger
}

func NewReviewer(s *store.Store, book *addressbook.Book, contracts *addressbook.Contracts, address, proxyAddress string, logger *zap.Logger) *Reviewer {
	return &Reviewer{
		store:        s,
		book:         book,
		contracts:    contracts,
		address:      address,
		proxyAddress: proxyAddress,
		logger:       logger,
	}
}

// Run loads both snapshots and classifies the full ledger. Per-transaction
// classification failures are logged and collected; they never abort the
// remaining entries. A retrieval failure is a hard stop: nothing can be
// classified without the raw data.
func (r *Reviewer) Run(ctx context.Context) (*Review, error) {
	primary, err := r.store.Load(ctx, r.address)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for %s: %w", r.address, err)
	}

	var proxy *store.AccountEvents
	if r.proxyAddress != "" {
		proxy, err = r.store.Load(ctx, r.proxyAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to load events for proxy %s: %w", r.proxyAddress, err)
		}
	}

	entries := ledger.Build(primary.ByCategory())
	r.logger.Info("Built ledger",
		zap.String("address", r.address),
		zap.Int("transactions", len(entries)))

	clf := classifier.New(primary, proxy, r.book, r.contracts, r.logger)

	result := &Review{
		Address:      r.address,
		ProxyAddress: r.proxyAddress,
		Ledger:       entries,
	}

	for _, entry := range entries {
		tx, err := clf.Classify(entry)
		if err != nil {
			var unknown *classifier.UnknownContractError
			if errors.As(err, &unknown) {
				r.logger.Warn("New contract, not classified",
					zap.String("hash", unknown.Hash),
					zap.String("contract", unknown.Contract),
					zap.String("function", unknown.Tx.FunctionName))
				result.Unknown = append(result.Unknown, unknown.Tx)
				continue
			}
			var inconsistent *classifier.InconsistentLedgerError
			if errors.As(err, &inconsistent) {
				r.logger.Error("Inconsistent ledger entry", zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("failed to classify %s: %w", entry.Hash, err)
		}
		result.Transactions = append(result.Transactions, *tx)
	}

	r.logger.Info("Review complete",
		zap.String("address", r.address),
		zap.Int("classified", len(result.Transactions)),
		zap.Int("unknown_contracts", len(result.Unknown)))
	return result, nil
}
