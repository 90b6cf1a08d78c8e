// Package etherscan is a minimal client for the Etherscan account API,
// covering the five account event endpoints the review needs.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// actions maps event categories to Etherscan account API actions.
var actions = map[model.Category]string{
	model.CategoryNormal:   "txlist",
	model.CategoryInternal: "txlistinternal",
	model.CategoryERC20:    "tokentx",
	model.CategoryERC721:   "tokennfttx",
	model.CategoryERC1155:  "token1155tx",
}

// RetrievalError reports that raw event data could not be retrieved for an
// address, either because the upstream API was unreachable or because it
// returned a malformed body. The client does not retry.
type RetrievalError struct {
	Address  string
	Category model.Category
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve %s events for %s: %v", e.Category, e.Address, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Client queries the Etherscan account API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an Etherscan client.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// AccountEvents fetches all events of one category for an address, oldest
// first, and stamps the category on every event.
func (c *Client) AccountEvents(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, error) {
	action, ok := actions[cat]
	if !ok {
		return nil, &RetrievalError{Address: address, Category: cat, Err: fmt.Errorf("unsupported category")}
	}

	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", action)
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "99999999")
	params.Set("sort", "asc")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &RetrievalError{Address: address, Category: cat, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Fetching account events",
		zap.String("address", address),
		zap.String("action", action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetrievalError{Address: address, Category: cat, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetrievalError{Address: address, Category: cat, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RetrievalError{Address: address, Category: cat,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &RetrievalError{Address: address, Category: cat, Err: err}
	}

	// Etherscan reports an empty result set as status "0" with a
	// "No transactions found" message.
	if decoded.Status == "0" && strings.Contains(decoded.Message, "No transactions found") {
		return []model.RawEvent{}, nil
	}

	var events []model.RawEvent
	if err := json.Unmarshal(decoded.Result, &events); err != nil {
		return nil, &RetrievalError{Address: address, Category: cat,
			Err: fmt.Errorf("malformed result (%s): %w", decoded.Message, err)}
	}

	for i := range events {
		events[i].Category = cat
	}

	c.logger.Info("Fetched account events",
		zap.String("address", address),
		zap.String("action", action),
		zap.Int("count", len(events)))
	return events, nil
}
