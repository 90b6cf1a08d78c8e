package classifier

import (
	"fmt"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// InconsistentLedgerError reports a ledger entry whose normal count claims a
// normal event exists when the raw event set has none. It signals a
// data-integrity bug upstream; fatal for the one transaction, not the run.
type InconsistentLedgerError struct {
	Hash        string
	NormalCount int
}

func (e *InconsistentLedgerError) Error() string {
	return fmt.Sprintf("ledger entry %s claims %d normal events but none were found", e.Hash, e.NormalCount)
}

// UnknownContractError reports a contract call whose recipient is not in the
// known-contracts registry. It carries the raw transaction so the caller can
// surface it for manual triage.
type UnknownContractError struct {
	Hash     string
	Contract string
	Tx       model.RawEvent
}

func (e *UnknownContractError) Error() string {
	return fmt.Sprintf("transaction %s calls unknown contract %s", e.Hash, e.Contract)
}
