/*
dto.go - Request/response data structures for the HTTP API

All monetary amounts cross the wire as exact fixed-point strings
("5000000.00"), never as JSON numbers, so no caller ever sees a
floating-point-rounded value.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granary/ledger-engine/ledger"
)

// =============================================================================
// REQUESTS
// =============================================================================

// RecordTransactionRequest is the POST /api/transactions payload.
type RecordTransactionRequest struct {
	Date        string             `json:"date"` // YYYY-MM-DD
	Description string             `json:"description"`
	CreatedBy   string             `json:"created_by"`
	Lines       []EntryLineRequest `json:"lines"`
}

// EntryLineRequest is one requested posting.
type EntryLineRequest struct {
	AccountID   string `json:"account_id"`
	Debit       string `json:"debit,omitempty"`
	Credit      string `json:"credit,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateAccountRequest is the POST /api/accounts payload.
type CreateAccountRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateAccountRequest is the PUT /api/accounts/{id} payload.
type UpdateAccountRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// AccountDTO is the wire form of a ledger account.
type AccountDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ParentID    string `json:"parent_id,omitempty"`
	Active      bool   `json:"active"`
	Balance     string `json:"balance"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TransactionDTO is the wire form of a recorded transaction.
type TransactionDTO struct {
	ID          string     `json:"id"`
	Reference   string     `json:"reference"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Total       string     `json:"total"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Entries     []EntryDTO `json:"entries"`
}

// EntryDTO is the wire form of one journal entry line.
type EntryDTO struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description,omitempty"`
}

// ListResponse carries a page of transactions plus pagination metadata.
type ListResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Total        int              `json:"total"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
}

// BalanceDTO is the GET /api/accounts/{id}/balance response.
type BalanceDTO struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	AsOf      string `json:"as_of,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func accountDTO(a *ledger.Account) AccountDTO {
	return AccountDTO{
		ID:          string(a.ID),
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		ParentID:    string(a.ParentID),
		Active:      a.Active,
		Balance:     a.Balance.StringFixed(2),
		Description: a.Description,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

func transactionDTO(tx *ledger.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:          string(tx.ID),
		Reference:   tx.Reference,
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		Total:       tx.Total.StringFixed(2),
		CreatedBy:   tx.CreatedBy,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
	for _, e := range tx.Entries {
		dto.Entries = append(dto.Entries, EntryDTO{
			ID:          string(e.ID),
			AccountID:   string(e.AccountID),
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			Debit:       e.Debit.StringFixed(2),
			Credit:      e.Credit.StringFixed(2),
			Description: e.Description,
		})
	}
	return dto
}

// parseAmount parses an optional fixed-point amount string; empty means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
