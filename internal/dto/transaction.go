package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// RecordTransactionRequest defines the data needed to append an income/expense transaction.
type RecordTransactionRequest struct {
	Kind          domain.TransactionKind `json:"kind" binding:"required,txnkind"`
	GrossAmount   int64                  `json:"grossAmount" binding:"required,gt=0"`
	CostAmount    *int64                 `json:"costAmount" binding:"omitempty,gte=0"`
	Note          string                 `json:"note" binding:"required"`
	Category      string                 `json:"category"`
	OccurredAt    *time.Time             `json:"occurredAt"`
	CustomerName  string                 `json:"customerName"`
	CustomerPhone string                 `json:"customerPhone"`
	PaymentStatus domain.PaymentStatus   `json:"paymentStatus" binding:"omitempty,oneof=settled owed"`
}

// ListTransactionsParams defines the query filters for listing transactions.
type ListTransactionsParams struct {
	Search        string                 `form:"search"`
	Kind          domain.TransactionKind `form:"kind" binding:"omitempty,txnkind"`
	PaymentStatus domain.PaymentStatus   `form:"paymentStatus" binding:"omitempty,oneof=settled owed"`
	Limit         int                    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken     string                 `form:"nextToken"`
}

// ListTransactionsResponse is one page of a transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// RecordReceiptRequest defines a point-of-sale receipt.
type RecordReceiptRequest struct {
	Total      int64      `json:"total" binding:"required,gt=0"`
	Note       string     `json:"note"`
	OccurredAt *time.Time `json:"occurredAt"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"id"`
	Kind          domain.TransactionKind `json:"kind"`
	GrossAmount   int64                  `json:"grossAmount"`
	CostAmount    *int64                 `json:"costAmount,omitempty"`
	LineProfit    *int64                 `json:"lineProfit,omitempty"` // Income only
	Note          string                 `json:"note"`
	Category      string                 `json:"category,omitempty"`
	OccurredAt    time.Time              `json:"occurredAt"`
	CustomerName  string                 `json:"customerName,omitempty"`
	CustomerPhone string                 `json:"customerPhone,omitempty"`
	PaymentStatus domain.PaymentStatus   `json:"paymentStatus"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.FinancialTransaction to its DTO.
func ToTransactionResponse(txn *domain.FinancialTransaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          txn.Kind,
		GrossAmount:   txn.GrossAmount,
		CostAmount:    txn.CostAmount,
		Note:          txn.Note,
		Category:      txn.Category,
		OccurredAt:    txn.OccurredAt,
		CustomerName:  txn.CustomerName,
		CustomerPhone: txn.CustomerPhone,
		PaymentStatus: txn.PaymentStatus,
		CreatedAt:     txn.CreatedAt,
	}
	if profit, ok := txn.LineProfit(); ok {
		resp.LineProfit = &profit
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.FinancialTransaction.
func ToTransactionResponses(txns []domain.FinancialTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
