package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granary/ledger-engine/ledger"
	"github.com/granary/ledger-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, ledger.NewReferenceAllocator("TXN"))
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTestAccount(t *testing.T, srv *httptest.Server, code, name, typ string) AccountDTO {
	t.Helper()
	var a AccountDTO
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/accounts", CreateAccountRequest{
		Code: code, Name: name, Type: typ,
	}, &a)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return a
}

// =============================================================================
// ACCOUNT ENDPOINTS
// =============================================================================

func TestAPI_CreateAndGetAccount(t *testing.T) {
	srv := newTestServer(t)

	created := createTestAccount(t, srv, "1010", "Cash", "asset")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "0.00", created.Balance)
	assert.True(t, created.Active)

	var got AccountDTO
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/accounts/"+created.ID, nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, got.ID)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/accounts/missing", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateAccount_CodeTypeMismatch(t *testing.T) {
	srv := newTestServer(t)

	var errResp ErrorResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/accounts", CreateAccountRequest{
		Code: "1010", Name: "Confused", Type: "revenue",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreateAccount_DuplicateCode(t *testing.T) {
	srv := newTestServer(t)
	createTestAccount(t, srv, "1010", "Cash", "asset")

	var errResp ErrorResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/accounts", CreateAccountRequest{
		Code: "1010", Name: "Petty Cash", Type: "asset",
	}, &errResp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_DeactivateAccount(t *testing.T) {
	srv := newTestServer(t)
	a := createTestAccount(t, srv, "1010", "Cash", "asset")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/accounts/"+a.ID, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got AccountDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/accounts/"+a.ID, nil, &got)
	assert.False(t, got.Active)
}

func TestAPI_SeedChart(t *testing.T) {
	srv := newTestServer(t)

	var seeded map[string]int
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/accounts/seed", nil, &seeded)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(ledger.DefaultChart), seeded["created"])

	var accounts []AccountDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/accounts", nil, &accounts)
	assert.Len(t, accounts, len(ledger.DefaultChart))
}

// =============================================================================
// TRANSACTION ENDPOINTS
// =============================================================================

func recordRent(t *testing.T, srv *httptest.Server, cashID, rentID string) TransactionDTO {
	t.Helper()
	var tx TransactionDTO
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", RecordTransactionRequest{
		Date:        "2024-01-15",
		Description: "Office rent",
		CreatedBy:   "user-7",
		Lines: []EntryLineRequest{
			{AccountID: cashID, Credit: "5000000.00"},
			{AccountID: rentID, Debit: "5000000.00"},
		},
	}, &tx)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return tx
}

func TestAPI_RecordTransaction(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	rent := createTestAccount(t, srv, "5020", "Rent Expense", "expense")

	tx := recordRent(t, srv, cash.ID, rent.ID)

	assert.NotEmpty(t, tx.ID)
	assert.Regexp(t, `^TXN-\d{8}-[0-9A-F]{6}$`, tx.Reference)
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Equal(t, "5000000.00", tx.Total)
	require.Len(t, tx.Entries, 2)
	assert.Equal(t, "5000000.00", tx.Entries[0].Credit)
	assert.Equal(t, "Cash", tx.Entries[0].AccountName)

	// Balances moved per the sign convention.
	var bal BalanceDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/accounts/"+cash.ID+"/balance", nil, &bal)
	assert.Equal(t, "-5000000.00", bal.Balance)

	doJSON(t, http.MethodGet, srv.URL+"/api/accounts/"+rent.ID+"/balance", nil, &bal)
	assert.Equal(t, "5000000.00", bal.Balance)
}

func TestAPI_RecordTransaction_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	sales := createTestAccount(t, srv, "4010", "Sales", "revenue")

	cases := []struct {
		name string
		req  RecordTransactionRequest
		want int
	}{
		{
			name: "single line is malformed",
			req: RecordTransactionRequest{
				Date:  "2024-01-15",
				Lines: []EntryLineRequest{{AccountID: cash.ID, Debit: "10.00"}},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unbalanced",
			req: RecordTransactionRequest{
				Date: "2024-01-15",
				Lines: []EntryLineRequest{
					{AccountID: cash.ID, Debit: "100.00"},
					{AccountID: sales.ID, Credit: "99.99"},
				},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown account",
			req: RecordTransactionRequest{
				Date: "2024-01-15",
				Lines: []EntryLineRequest{
					{AccountID: cash.ID, Debit: "10.00"},
					{AccountID: "missing", Credit: "10.00"},
				},
			},
			want: http.StatusNotFound,
		},
		{
			name: "bad date",
			req: RecordTransactionRequest{
				Date: "15/01/2024",
				Lines: []EntryLineRequest{
					{AccountID: cash.ID, Debit: "10.00"},
					{AccountID: sales.ID, Credit: "10.00"},
				},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unparsable amount",
			req: RecordTransactionRequest{
				Date: "2024-01-15",
				Lines: []EntryLineRequest{
					{AccountID: cash.ID, Debit: "ten"},
					{AccountID: sales.ID, Credit: "10.00"},
				},
			},
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errResp ErrorResponse
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", tc.req, &errResp)
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestAPI_GetTransaction_ByIDAndReference(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	rent := createTestAccount(t, srv, "5020", "Rent Expense", "expense")
	tx := recordRent(t, srv, cash.ID, rent.ID)

	var byID TransactionDTO
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/transactions/"+tx.ID, nil, &byID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tx.Reference, byID.Reference)

	var byRef TransactionDTO
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/transactions/ref/"+tx.Reference, nil, &byRef)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tx.ID, byRef.ID)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/transactions/missing", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ListTransactions_FilterAndPaginate(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	sales := createTestAccount(t, srv, "4010", "Sales", "revenue")

	for i := 0; i < 3; i++ {
		var tx TransactionDTO
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", RecordTransactionRequest{
			Date:        fmt.Sprintf("2024-03-0%d", i+1),
			Description: fmt.Sprintf("sale %d", i+1),
			CreatedBy:   "alice",
			Lines: []EntryLineRequest{
				{AccountID: cash.ID, Debit: "10.00"},
				{AccountID: sales.ID, Credit: "10.00"},
			},
		}, &tx)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var list ListResponse
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/transactions?limit=2&offset=0", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Transactions, 2)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "sale 3", list.Transactions[0].Description)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/transactions?from=2024-03-02&to=2024-03-02", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, "sale 2", list.Transactions[0].Description)
}

func TestAPI_SearchTransactions(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	rent := createTestAccount(t, srv, "5020", "Rent Expense", "expense")
	recordRent(t, srv, cash.ID, rent.ID)

	var list ListResponse
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/transactions/search?q=office", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Transactions, 1)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/transactions/search", nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_AccountBalance_AsOf(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	rent := createTestAccount(t, srv, "5020", "Rent Expense", "expense")
	recordRent(t, srv, cash.ID, rent.ID) // dated 2024-01-15

	var bal BalanceDTO
	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/accounts/"+cash.ID+"/balance?as_of=2024-01-01", nil, &bal)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0.00", bal.Balance)
	assert.Equal(t, "2024-01-01", bal.AsOf)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/accounts/"+cash.ID+"/balance?as_of=2024-01-31", nil, &bal)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "-5000000.00", bal.Balance)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/accounts/"+cash.ID+"/balance?as_of=bogus", nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_AccountTransactions(t *testing.T) {
	srv := newTestServer(t)
	cash := createTestAccount(t, srv, "1010", "Cash", "asset")
	rent := createTestAccount(t, srv, "5020", "Rent Expense", "expense")
	recordRent(t, srv, cash.ID, rent.ID)

	var list ListResponse
	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/accounts/"+rent.ID+"/transactions", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Transactions, 1)

	var errResp ErrorResponse
	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/accounts/missing/transactions", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
