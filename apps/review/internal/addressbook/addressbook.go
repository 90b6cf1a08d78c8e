// Package addressbook maps raw Ethereum addresses to human-readable names
// and holds the registry of contracts the classifier knows how to decompose.
// Both tables are static configuration loaded at startup; there is no
// network lookup.
package addressbook

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
)

// Book resolves raw addresses to display names. Unresolved addresses pass
// through unchanged.
type Book struct {
	byAddress map[common.Address]string
}

// NewBook builds a book from a raw address -> display name mapping.
func NewBook(entries map[string]string) *Book {
	book := &Book{byAddress: make(map[common.Address]string, len(entries))}
	for addr, name := range entries {
		book.byAddress[common.HexToAddress(addr)] = name
	}
	return book
}

// LoadBook reads a JSON object of address -> name pairs.
func LoadBook(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read address book: %w", err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse address book %s: %w", path, err)
	}
	return NewBook(entries), nil
}

// Resolve returns the display name for a raw address, or the raw address
// unchanged when it is not in the book.
func (b *Book) Resolve(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	if name, ok := b.byAddress[common.HexToAddress(addr)]; ok {
		return name
	}
	return addr
}

// Contract is one entry of the known-contracts registry. PassThrough marks
// registry-style contracts whose calls carry no asset movements.
type Contract struct {
	Name        string         `json:"name"`
	Address     common.Address `json:"address"`
	PassThrough bool           `json:"pass_through,omitempty"`
}

// Contracts is the registry of contracts the classifier can decompose.
type Contracts struct {
	byAddress map[common.Address]Contract
}

// NewContracts builds a registry from a list of contract entries.
func NewContracts(entries []Contract) *Contracts {
	registry := &Contracts{byAddress: make(map[common.Address]Contract, len(entries))}
	for _, entry := range entries {
		registry.byAddress[entry.Address] = entry
	}
	return registry
}

// LoadContracts reads a JSON array of contract entries.
func LoadContracts(path string) (*Contracts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read known contracts: %w", err)
	}
	var entries []Contract
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse known contracts %s: %w", path, err)
	}
	return NewContracts(entries), nil
}

// Lookup returns the registry entry for a raw contract address.
func (c *Contracts) Lookup(addr string) (Contract, bool) {
	if !common.IsHexAddress(addr) {
		return Contract{}, false
	}
	contract, ok := c.byAddress[common.HexToAddress(addr)]
	return contract, ok
}
