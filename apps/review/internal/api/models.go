package api

import (
	"time"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// SummaryResponse represents the API response for the ledger summary
type SummaryResponse struct {
	Address      string       `json:"address"`
	Transactions []SummaryRow `json:"transactions"`
}

// SummaryRow is one ledger entry with its per-category event counts
type SummaryRow struct {
	TxHash        string    `json:"tx_hash"`
	TxDate        time.Time `json:"tx_date"`
	NormalCount   int       `json:"normal_count"`
	InternalCount int       `json:"internal_count"`
	ERC20Count    int       `json:"erc20_count"`
	ERC721Count   int       `json:"erc721_count"`
	ERC1155Count  int       `json:"erc1155_count"`
}

// TransactionResponse represents the API response for one classified transaction
type TransactionResponse struct {
	TxHash           string                `json:"tx_hash"`
	TxDate           time.Time             `json:"tx_date"`
	FromName         string                `json:"from_name,omitempty"`
	ToName           string                `json:"to_name,omitempty"`
	ContractName     string                `json:"contract_name,omitempty"`
	FunctionName     string                `json:"function_name,omitempty"`
	ExternalInbound  bool                  `json:"external_inbound"`
	IsError          bool                  `json:"is_error"`
	EthMovements     []model.AssetMovement `json:"eth_movements,omitempty"`
	TokenMovements   []model.AssetMovement `json:"token_movements,omitempty"`
	SkippedMovements int                   `json:"skipped_movements,omitempty"`
}

// TransactionsResponse represents the API response for all classified transactions
type TransactionsResponse struct {
	Address      string                `json:"address"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ErrorResponse represents the API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
