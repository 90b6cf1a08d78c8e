package model

import "time"

// EthAsset is the asset name used for ether movements.
const EthAsset = "ETH"

// AssetMovement is one directional transfer of value extracted from a raw
// event. Amount is an exact decimal string (never a float) and the
// participant addresses are already resolved to display names.
type AssetMovement struct {
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
}

// TransactionResult is the classification of one ledger entry. It is an
// immutable snapshot once returned by the classifier.
type TransactionResult struct {
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`

	FromName     string `json:"from_name,omitempty"`
	ToName       string `json:"to_name,omitempty"`
	ContractName string `json:"contract_name,omitempty"`
	FunctionName string `json:"function_name,omitempty"`

	// ExternalInbound is true when the transaction was not sent by the
	// reviewed address: it has no normal event, only internal or token ones.
	ExternalInbound bool `json:"external_inbound"`
	IsError         bool `json:"is_error"`

	EthMovements   []AssetMovement `json:"eth_movements,omitempty"`
	TokenMovements []AssetMovement `json:"token_movements,omitempty"`

	// SkippedMovements counts raw events whose amount could not be parsed
	// and therefore produced no movement.
	SkippedMovements int `json:"skipped_movements,omitempty"`
}

// Time returns the transaction time in UTC.
func (r TransactionResult) Time() time.Time {
	return time.Unix(r.Timestamp, 0).UTC()
}
