package events

import (
	"time"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// ClassificationEvent is the Kafka payload for one classified transaction.
// Consumers own any downstream storage; the review itself keeps nothing.
type ClassificationEvent struct {
	EventID         string                `json:"event_id"`
	Address         string                `json:"address"`
	TxHash          string                `json:"tx_hash"`
	TxDate          time.Time             `json:"tx_date"`
	FromName        string                `json:"from_name,omitempty"`
	ToName          string                `json:"to_name,omitempty"`
	ContractName    string                `json:"contract_name,omitempty"`
	FunctionName    string                `json:"function_name,omitempty"`
	ExternalInbound bool                  `json:"external_inbound"`
	IsError         bool                  `json:"is_error"`
	EthMovements    []model.AssetMovement `json:"eth_movements,omitempty"`
	TokenMovements  []model.AssetMovement `json:"token_movements,omitempty"`
	Timestamp       time.Time             `json:"timestamp"`
}
