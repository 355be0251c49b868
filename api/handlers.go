/*
handlers.go - HTTP handlers for the ledger engine

PURPOSE:
  Exposes the engine, registry and query layers over REST. Handlers
  parse and validate wire input, delegate to domain logic, and map
  domain errors to HTTP status codes.

ERROR MAPPING:
  400  MalformedTransaction, UnbalancedEntry, bad wire input
  404  UnknownOrInactiveAccount, account/transaction not found
  409  Duplicate account code, reference exhaustion
  503  StorageUnavailable

  The engine performs no authorization; the created_by field is a
  passthrough from the (external) auth layer.

SEE ALSO:
  - dto.go: Wire structures and conversions
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/granary/ledger-engine/ledger"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *ledger.Engine
	Query    *ledger.Query
	Registry *ledger.Registry
}

// NewHandler creates a handler over the given store.
func NewHandler(store ledger.TxStore, refs *ledger.ReferenceAllocator) *Handler {
	engine := ledger.NewEngineWithAllocator(store, refs)
	return &Handler{
		Engine:   engine,
		Query:    ledger.NewQuery(store),
		Registry: engine.Registry(),
	}
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// RecordTransaction posts a balanced transaction.
func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	draft := ledger.Draft{
		Date:        date,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	}
	for _, l := range req.Lines {
		debit, err := parseAmount(l.Debit)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid debit amount", err)
			return
		}
		credit, err := parseAmount(l.Credit)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid credit amount", err)
			return
		}
		draft.Lines = append(draft.Lines, ledger.DraftLine{
			AccountID:   ledger.AccountID(l.AccountID),
			Debit:       debit,
			Credit:      credit,
			Description: l.Description,
		})
	}

	tx, err := h.Engine.Record(r.Context(), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dto := transactionDTO(tx)
	writeJSON(w, http.StatusCreated, dto)
}

// GetTransaction returns a transaction by id.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := ledger.TransactionID(chi.URLParam(r, "id"))
	tx, err := h.Query.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionDTO(tx))
}

// GetTransactionByReference returns a transaction by reference number.
func (h *Handler) GetTransactionByReference(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	tx, err := h.Query.FindByReference(r.Context(), ref)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionDTO(tx))
}

// ListTransactions returns a filtered, paginated transaction list with
// a total count for pagination metadata.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}
	limit, offset := parsePagination(r)

	txs, err := h.Query.FindAll(r.Context(), f, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	total, err := h.Query.Count(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(txs, total, limit, offset))
}

// SearchTransactions matches free text against description/reference.
func (h *Handler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		writeError(w, http.StatusBadRequest, "Missing query parameter q", nil)
		return
	}
	limit, offset := parsePagination(r)

	txs, err := h.Query.Search(r.Context(), text, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(txs, len(txs), limit, offset))
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns the chart of accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	accounts, err := h.Registry.List(r.Context(), includeInactive)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]AccountDTO, len(accounts))
	for i := range accounts {
		dtos[i] = accountDTO(&accounts[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAccount returns a single account.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))
	a, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountDTO(a))
}

// CreateAccount adds an account to the chart.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := h.Registry.Create(r.Context(), ledger.Account{
		Code:        req.Code,
		Name:        req.Name,
		Type:        ledger.AccountType(req.Type),
		ParentID:    ledger.AccountID(req.ParentID),
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountDTO(a))
}

// UpdateAccount renames an account.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	a, err := h.Registry.Rename(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountDTO(a))
}

// DeactivateAccount marks an account inactive. Accounts are never
// physically deleted.
func (h *Handler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))
	if err := h.Registry.Deactivate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": string(id), "active": false})
}

// GetAccountTransactions returns the account's transaction history.
func (h *Handler) GetAccountTransactions(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))
	limit, offset := parsePagination(r)

	txs, err := h.Query.FindByAccount(r.Context(), id, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(txs, len(txs), limit, offset))
}

// GetAccountBalance returns the running balance, or a recomputed
// balance when as_of is supplied.
func (h *Handler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))

	var asOf *time.Time
	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
			return
		}
		asOf = &t
	}

	balance, err := h.Query.AccountBalance(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := BalanceDTO{AccountID: string(id), Balance: balance.StringFixed(2)}
	if asOf != nil {
		dto.AsOf = asOf.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, dto)
}

// SeedChart installs the default chart of accounts.
func (h *Handler) SeedChart(w http.ResponseWriter, r *http.Request) {
	created, err := h.Registry.SeedDefaultChart(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": created})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseFilter(r *http.Request) (ledger.Filter, error) {
	var f ledger.Filter
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	f.CreatedBy = q.Get("created_by")
	f.Reference = q.Get("reference")
	return f, nil
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func listResponse(txs []ledger.Transaction, total, limit, offset int) ListResponse {
	resp := ListResponse{
		Transactions: make([]TransactionDTO, len(txs)),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}
	for i := range txs {
		resp.Transactions[i] = transactionDTO(&txs[i])
	}
	return resp
}

// writeDomainError maps ledger errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrMalformedTransaction),
		errors.Is(err, ledger.ErrUnbalancedEntry),
		errors.Is(err, ledger.ErrCodeTypeMismatch):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, ledger.ErrUnknownOrInactiveAccount),
		ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, ledger.ErrDuplicateCode),
		errors.Is(err, ledger.ErrReferenceExhausted):
		writeError(w, http.StatusConflict, "Conflict", err)
	case errors.Is(err, ledger.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable, try again", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
