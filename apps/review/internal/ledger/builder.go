// Package ledger merges all event categories for an address into one
// chronological, hash-deduplicated sequence of transactions.
package ledger

import (
	"sort"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// Build deduplicates events by hash (keeping the first-seen timestamp),
// sorts ascending by timestamp with first-seen order breaking ties, and
// counts events per category across each category's full list. Counts are
// not mutually exclusive: a contract call with token transfers has both a
// normal count and token counts. A hash with zero normal events is still a
// ledger entry.
func Build(byCategory map[model.Category][]model.RawEvent) []model.LedgerEntry {
	seen := make(map[string]int)
	var entries []model.LedgerEntry

	for _, cat := range model.Categories {
		for _, ev := range byCategory[cat] {
			if _, ok := seen[ev.Hash]; ok {
				continue
			}
			seen[ev.Hash] = len(entries)
			entries = append(entries, model.LedgerEntry{
				Hash:      ev.Hash,
				Timestamp: ev.Timestamp(),
			})
		}
	}

	for _, cat := range model.Categories {
		counts := make(map[string]int)
		for _, ev := range byCategory[cat] {
			counts[ev.Hash]++
		}
		for hash, n := range counts {
			entries[seen[hash]].SetCount(cat, n)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})
	return entries
}
