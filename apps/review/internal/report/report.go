// Package report renders a review as human-readable text: the per-category
// ledger summary table and the classified transactions with their asset
// movements.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mikgur/eth-address-review/apps/review/internal/addressbook"
	"github.com/mikgur/eth-address-review/apps/review/internal/amount"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
	"github.com/mikgur/eth-address-review/apps/review/internal/review"
)

const timeLayout = "2006-01-02 15:04:05"

// WriteSummary renders the ledger as a table of hashes with timestamps and
// per-category event counts.
func WriteSummary(w io.Writer, entries []model.LedgerEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HASH\tDATETIME\tDATE\tNORMAL\tINTERNAL\tERC20\tERC721\tERC1155")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			e.Hash,
			e.Time().Format(timeLayout),
			e.Time().Format("2006-01-02"),
			e.NormalCount,
			e.InternalCount,
			e.ERC20Count,
			e.ERC721Count,
			e.ERC1155Count)
	}
	return tw.Flush()
}

// WriteTransactions renders every classified transaction with its movements.
func WriteTransactions(w io.Writer, transactions []model.TransactionResult) {
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s  %s  %s\n", tx.Time().Format(timeLayout), tx.Hash, headline(tx))
		for _, m := range tx.EthMovements {
			fmt.Fprintf(w, "    %s %s: %s -> %s\n", m.Amount, m.Asset, m.FromName, m.ToName)
		}
		for _, m := range tx.TokenMovements {
			fmt.Fprintf(w, "    %s %s: %s -> %s\n", m.Amount, m.Asset, m.FromName, m.ToName)
		}
		if tx.SkippedMovements > 0 {
			fmt.Fprintf(w, "    (%d movements skipped: malformed amounts)\n", tx.SkippedMovements)
		}
	}
}

// WriteUnknown lists transactions that called contracts outside the
// registry, for manual triage.
func WriteUnknown(w io.Writer, unknown []model.RawEvent) {
	for _, tx := range unknown {
		fmt.Fprintf(w, "NEW CONTRACT: %s\n", tx.To)
		fmt.Fprintf(w, "    hash=%s function=%q value=%s\n", tx.Hash, tx.FunctionName, tx.Value)
	}
}

// Write renders the full review.
func Write(w io.Writer, r *review.Review) error {
	fmt.Fprintf(w, "Transaction history for %s\n\n", r.Address)
	if err := WriteSummary(w, r.Ledger); err != nil {
		return err
	}
	fmt.Fprintln(w)
	WriteTransactions(w, r.Transactions)
	if len(r.Unknown) > 0 {
		fmt.Fprintln(w)
		WriteUnknown(w, r.Unknown)
	}
	return nil
}

func headline(tx model.TransactionResult) string {
	switch {
	case tx.ExternalInbound:
		return "external inbound"
	case tx.IsError:
		return fmt.Sprintf("%s - %s (failed)", tx.ContractName, tx.FunctionName)
	case tx.ContractName != "":
		if tx.FunctionName == "" {
			return tx.ContractName
		}
		return fmt.Sprintf("%s - %s", tx.ContractName, tx.FunctionName)
	default:
		return fmt.Sprintf("%s -> %s", tx.FromName, tx.ToName)
	}
}

// TokenMessage builds a one-line description of a token transfer event,
// using the full token name. Transfers from the zero address are reported as
// mints.
func TokenMessage(ev model.RawEvent, book *addressbook.Book) (string, error) {
	value, err := amount.FromBaseUnits(ev.Value, ev.TokenDecimal)
	if err != nil {
		return "", err
	}
	from := book.Resolve(ev.From)
	to := book.Resolve(ev.To)
	if from == "ZERO Address" {
		return fmt.Sprintf("%s %s minted to %s", value, ev.TokenName, to), nil
	}
	return fmt.Sprintf("%s %s transferred from %s to %s", value, ev.TokenName, from, to), nil
}
