package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
	"github.com/mikgur/eth-address-review/apps/review/internal/review"
)

// ReviewHandler serves the ledger summary and classified transactions of a
// completed review run.
type ReviewHandler struct {
	result *review.Review
	byHash map[string]model.TransactionResult
	logger *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(result *review.Review, logger *zap.Logger) *ReviewHandler {
	byHash := make(map[string]model.TransactionResult, len(result.Transactions))
	for _, tx := range result.Transactions {
		byHash[tx.Hash] = tx
	}
	return &ReviewHandler{result: result, byHash: byHash, logger: logger}
}

// GetSummary handles GET /api/review/summary
func (h *ReviewHandler) GetSummary(w http.ResponseWriter, _ *http.Request) {
	rows := make([]SummaryRow, 0, len(h.result.Ledger))
	for _, e := range h.result.Ledger {
		rows = append(rows, SummaryRow{
			TxHash:        e.Hash,
			TxDate:        e.Time(),
			NormalCount:   e.NormalCount,
			InternalCount: e.InternalCount,
			ERC20Count:    e.ERC20Count,
			ERC721Count:   e.ERC721Count,
			ERC1155Count:  e.ERC1155Count,
		})
	}

	h.writeJSONResponse(w, http.StatusOK, SummaryResponse{
		Address:      h.result.Address,
		Transactions: rows,
	})
}

// GetTransactions handles GET /api/review/transactions
func (h *ReviewHandler) GetTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions := make([]TransactionResponse, 0, len(h.result.Transactions))
	for _, tx := range h.result.Transactions {
		transactions = append(transactions, toTransactionResponse(tx))
	}

	h.writeJSONResponse(w, http.StatusOK, TransactionsResponse{
		Address:      h.result.Address,
		Transactions: transactions,
	})
}

// GetTransaction handles GET /api/review/transactions/{tx_hash}
func (h *ReviewHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	txHash := vars["tx_hash"]

	if txHash == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "missing_tx_hash", "Transaction hash is required")
		return
	}

	tx, ok := h.byHash[txHash]
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "transaction_not_found", "Transaction not classified in this review")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, toTransactionResponse(tx))
}

func toTransactionResponse(tx model.TransactionResult) TransactionResponse {
	return TransactionResponse{
		TxHash:           tx.Hash,
		TxDate:           tx.Time(),
		FromName:         tx.FromName,
		ToName:           tx.ToName,
		ContractName:     tx.ContractName,
		FunctionName:     tx.FunctionName,
		ExternalInbound:  tx.ExternalInbound,
		IsError:          tx.IsError,
		EthMovements:     tx.EthMovements,
		TokenMovements:   tx.TokenMovements,
		SkippedMovements: tx.SkippedMovements,
	}
}

// writeJSONResponse writes a JSON response with the given status code
func (h *ReviewHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeErrorResponse writes an error response
func (h *ReviewHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	h.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
