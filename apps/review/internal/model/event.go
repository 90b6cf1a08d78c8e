package model

import (
	"strconv"
	"time"
)

// Category identifies which Etherscan account endpoint an event came from.
type Category string

const (
	CategoryNormal   Category = "normal"
	CategoryInternal Category = "internal"
	CategoryERC20    Category = "erc20"
	CategoryERC721   Category = "erc721"
	CategoryERC1155  Category = "erc1155"
)

// Categories lists all event categories in fetch order.
var Categories = []Category{
	CategoryNormal,
	CategoryInternal,
	CategoryERC20,
	CategoryERC721,
	CategoryERC1155,
}

// TokenCategories lists the categories whose events describe token transfers.
var TokenCategories = []Category{CategoryERC20, CategoryERC721, CategoryERC1155}

// RawEvent is one on-chain event as reported by the Etherscan account API.
// Field names follow the API response schema; not every field is populated for
// every category (functionName and isError only appear on normal transactions,
// token fields only on token transfers). Events are immutable once fetched.
type RawEvent struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Input           string `json:"input"`
	IsError         string `json:"isError"`
	FunctionName    string `json:"functionName"`
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	TokenID         string `json:"tokenID"`
	TokenValue      string `json:"tokenValue"`
	GasUsed         string `json:"gasUsed"`

	// Category is stamped by the store when the event is loaded; it is not
	// part of the API response.
	Category Category `json:"-"`
}

// Timestamp returns the event time as unix seconds, or 0 if the field is
// not parseable.
func (e RawEvent) Timestamp() int64 {
	ts, err := strconv.ParseInt(e.TimeStamp, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// Time returns the event time in UTC.
func (e RawEvent) Time() time.Time {
	return time.Unix(e.Timestamp(), 0).UTC()
}

// Failed reports whether the transaction's error flag is set.
func (e RawEvent) Failed() bool {
	return e.IsError != "" && e.IsError != "0"
}
