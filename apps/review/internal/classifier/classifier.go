// Package classifier decides what kind of economic event each ledger entry
// represents and decomposes contract interactions into asset movements.
package classifier

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/addressbook"
	"github.com/mikgur/eth-address-review/apps/review/internal/amount"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
	"github.com/mikgur/eth-address-review/apps/review/internal/store"
)

// Classifier classifies transactions for one reviewed address. The proxy
// snapshot is optional; when present, its token events are cross-referenced
// so the proxy's internal pass-through leg is not double-counted.
type Classifier struct {
	primary   *store.AccountEvents
	proxy     *store.AccountEvents
	book      *addressbook.Book
	contracts *addressbook.Contracts
	selfName  string
	logger    *zap.Logger
}

// New creates a classifier. selfName is the display name the address book
// resolves for the reviewed address; movements attributed to it identify the
// proxy's pass-through leg.
func New(primary, proxy *store.AccountEvents, book *addressbook.Book, contracts *addressbook.Contracts, logger *zap.Logger) *Classifier {
	return &Classifier{
		primary:   primary,
		proxy:     proxy,
		book:      book,
		contracts: contracts,
		selfName:  book.Resolve(primary.Address()),
		logger:    logger,
	}
}

// Classify produces the classification for one ledger entry. It returns an
// UnknownContractError for calls to unregistered contracts and an
// InconsistentLedgerError when the entry's normal count does not match the
// raw event set; both are per-transaction failures the caller can log and
// skip.
func (c *Classifier) Classify(entry model.LedgerEntry) (*model.TransactionResult, error) {
	result := &model.TransactionResult{Hash: entry.Hash, Timestamp: entry.Timestamp}

	// No normal event: the transaction was initiated elsewhere and only
	// touched the address through internal or token transfers.
	if entry.NormalCount < 1 {
		result.ExternalInbound = true
		for _, ev := range c.primary.TokensByHash(entry.Hash) {
			c.appendToken(result, ev)
		}
		for _, ev := range c.primary.InternalByHash(entry.Hash) {
			c.appendEth(result, ev)
		}
		return result, nil
	}

	normals := c.primary.NormalByHash(entry.Hash)
	if len(normals) == 0 {
		return nil, &InconsistentLedgerError{Hash: entry.Hash, NormalCount: entry.NormalCount}
	}
	if len(normals) > 1 {
		c.logger.Warn("Multiple normal events for hash, using the first",
			zap.String("hash", entry.Hash),
			zap.Int("count", len(normals)))
	}
	tx := normals[0]

	result.FromName = c.book.Resolve(tx.From)
	result.ToName = c.book.Resolve(tx.To)

	// No call data: a plain value transfer. It cannot carry token events, so
	// no further lookups are needed.
	if tx.Input == "0x" {
		value, err := amount.FromWei(tx.Value)
		if err != nil {
			c.skipMovement(result, tx, err)
			return result, nil
		}
		result.EthMovements = append(result.EthMovements, model.AssetMovement{
			Asset:    model.EthAsset,
			Amount:   value,
			FromName: result.FromName,
			ToName:   result.ToName,
		})
		return result, nil
	}

	// Transactions not originated by the reviewed address are not
	// decomposed further.
	if result.FromName != c.selfName {
		return result, nil
	}

	contract, ok := c.contracts.Lookup(tx.To)
	if !ok {
		return nil, &UnknownContractError{Hash: entry.Hash, Contract: tx.To, Tx: tx}
	}

	return c.decompose(entry, tx, contract, result), nil
}

// decompose extracts the asset movements of a call to a known contract.
func (c *Classifier) decompose(entry model.LedgerEntry, tx model.RawEvent, contract addressbook.Contract, result *model.TransactionResult) *model.TransactionResult {
	c.logger.Debug("Decomposing contract transaction",
		zap.String("hash", entry.Hash),
		zap.String("contract", contract.Name),
		zap.String("contract_address", tx.To))

	result.ContractName = contract.Name
	if contract.PassThrough {
		// Registry calls carry no asset movements.
		return result
	}

	result.FunctionName = functionName(tx.FunctionName)

	if tx.Failed() {
		result.IsError = true
		return result
	}

	if amount.IsPositive(tx.Value) {
		value, err := amount.FromWei(tx.Value)
		if err != nil {
			c.skipMovement(result, tx, err)
		} else {
			result.EthMovements = append(result.EthMovements, model.AssetMovement{
				Asset:    model.EthAsset,
				Amount:   value,
				FromName: result.FromName,
				ToName:   result.ToName,
			})
		}
	}

	for _, ev := range c.primary.TokensByHash(entry.Hash) {
		c.appendToken(result, ev)
	}
	for _, ev := range c.primary.InternalByHash(entry.Hash) {
		c.appendEth(result, ev)
	}

	if c.proxy == nil {
		return result
	}

	// Proxy token events whose resolved sender or recipient is the reviewed
	// address are the proxy's internal pass-through leg; the economic
	// transfer is already captured through the primary address's events.
	for _, ev := range c.proxy.TokensByHash(entry.Hash) {
		if c.book.Resolve(ev.From) == c.selfName || c.book.Resolve(ev.To) == c.selfName {
			continue
		}
		c.appendToken(result, ev)
	}
	return result
}

func (c *Classifier) appendToken(result *model.TransactionResult, ev model.RawEvent) {
	asset := ev.TokenSymbol
	var value string
	switch ev.Category {
	case model.CategoryERC721:
		// NFT transfers carry a token id instead of a value.
		asset = asset + " #" + ev.TokenID
		value = "1"
	case model.CategoryERC1155:
		asset = asset + " #" + ev.TokenID
		// tokenValue is a unit count; zero is valid, only unparseable input
		// is skipped.
		v, err := amount.FromBaseUnits(ev.TokenValue, "0")
		if err != nil {
			c.skipMovement(result, ev, &amount.ParseError{Field: "tokenValue", Value: ev.TokenValue})
			return
		}
		value = v
	default:
		var err error
		value, err = amount.FromBaseUnits(ev.Value, ev.TokenDecimal)
		if err != nil {
			c.skipMovement(result, ev, err)
			return
		}
	}
	result.TokenMovements = append(result.TokenMovements, model.AssetMovement{
		Asset:    asset,
		Amount:   value,
		FromName: c.book.Resolve(ev.From),
		ToName:   c.book.Resolve(ev.To),
	})
}

func (c *Classifier) appendEth(result *model.TransactionResult, ev model.RawEvent) {
	value, err := amount.FromWei(ev.Value)
	if err != nil {
		c.skipMovement(result, ev, err)
		return
	}
	result.EthMovements = append(result.EthMovements, model.AssetMovement{
		Asset:    model.EthAsset,
		Amount:   value,
		FromName: c.book.Resolve(ev.From),
		ToName:   c.book.Resolve(ev.To),
	})
}

// skipMovement records a raw event whose amount could not be parsed. The
// offending movement is dropped; the rest of the transaction still
// classifies, with the skip flagged on the result.
func (c *Classifier) skipMovement(result *model.TransactionResult, ev model.RawEvent, err error) {
	result.SkippedMovements++
	c.logger.Warn("Skipping movement with malformed amount",
		zap.String("hash", ev.Hash),
		zap.String("category", string(ev.Category)),
		zap.Error(err))
}

// functionName extracts the bare function name from a raw signature such as
// "execute(address _target, bytes _data)".
func functionName(signature string) string {
	if i := strings.Index(signature, "("); i >= 0 {
		return signature[:i]
	}
	return signature
}
