package model

import "time"

// LedgerEntry is one deduplicated transaction hash in the chronological
// ledger, with the number of raw events observed per category. A hash may
// have counts in several categories at once (a contract call with token
// transfers has both a normal count and token counts).
type LedgerEntry struct {
	Hash      string
	Timestamp int64

	NormalCount   int
	InternalCount int
	ERC20Count    int
	ERC721Count   int
	ERC1155Count  int
}

// Time returns the entry time in UTC.
func (e LedgerEntry) Time() time.Time {
	return time.Unix(e.Timestamp, 0).UTC()
}

// Count returns the number of raw events of the given category sharing the
// entry's hash.
func (e LedgerEntry) Count(cat Category) int {
	switch cat {
	case CategoryNormal:
		return e.NormalCount
	case CategoryInternal:
		return e.InternalCount
	case CategoryERC20:
		return e.ERC20Count
	case CategoryERC721:
		return e.ERC721Count
	case CategoryERC1155:
		return e.ERC1155Count
	}
	return 0
}

// SetCount stores the per-category event count on the entry.
func (e *LedgerEntry) SetCount(cat Category, n int) {
	switch cat {
	case CategoryNormal:
		e.NormalCount = n
	case CategoryInternal:
		e.InternalCount = n
	case CategoryERC20:
		e.ERC20Count = n
	case CategoryERC721:
		e.ERC721Count = n
	case CategoryERC1155:
		e.ERC1155Count = n
	}
}
