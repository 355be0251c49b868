/*
Package sqlite provides the SQLite-backed implementation of the ledger
storage interfaces.

PURPOSE:
  Implements ledger.Store and ledger.TxStore using SQLite. The same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  accounts:     Chart of accounts with the engine-owned running balance
  transactions: Immutable transaction headers
  entries:      Journal entry lines, ordered by line_no per transaction

AMOUNT ENCODING:
  All amounts are 2-decimal fixed point and are stored as INTEGER
  cents. This keeps SQL arithmetic exact and lets balance updates be
  expressed as "balance = balance + ?" - a relative update executed
  inside the storage transaction, which closes the classic lost-update
  race between concurrent recordings against the same account.

UNIQUENESS:
  transactions.reference and accounts.code carry unique indexes. A
  violation is detected from the driver error and surfaced as
  ledger.ErrDuplicateReference / ledger.ErrDuplicateCode so callers can
  retry allocation or reject the input.

CONCURRENCY:
  A sync.RWMutex serializes writers on top of SQLite's own locking,
  as WAL mode allows one writer at a time. With PostgreSQL,
  database-level concurrency control would handle this instead.

SEE ALSO:
  - ledger/store.go: Interface definitions and contracts
  - ledger/engine.go: The unit-of-work consumer
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/granary/ledger-engine/ledger"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// Store implements ledger.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ledger.TxStore = (*Store)(nil)

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the in-memory database shared across
	// goroutines and serializes SQLite writers.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Chart of accounts. balance is engine-owned (see ledger/engine.go).
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		parent_id TEXT REFERENCES accounts(id),
		active INTEGER NOT NULL DEFAULT 1,
		balance INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_code ON accounts(code);
	CREATE INDEX IF NOT EXISTS idx_accounts_parent ON accounts(parent_id);

	-- Transaction headers (immutable once committed).
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		total INTEGER NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: reference uniqueness is enforced here, not by any
	-- check-then-insert pre-flight in the allocator.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_reference
		ON transactions(reference);
	CREATE INDEX IF NOT EXISTS idx_transactions_date
		ON transactions(date DESC, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_transactions_created_by
		ON transactions(created_by);

	-- Journal entry lines, owned by their transaction.
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL REFERENCES transactions(id),
		account_id TEXT NOT NULL REFERENCES accounts(id),
		line_no INTEGER NOT NULL,
		debit INTEGER NOT NULL,
		credit INTEGER NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_entries_transaction
		ON entries(transaction_id, line_no);
	CREATE INDEX IF NOT EXISTS idx_entries_account
		ON entries(account_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so the statement
// helpers below serve the plain store and the unit-of-work alike.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// AMOUNT ENCODING - decimal <-> integer cents
// =============================================================================

func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "transactions.reference"):
			return ledger.ErrDuplicateReference
		case strings.Contains(msg, "accounts.code"):
			return ledger.ErrDuplicateCode
		}
	}
	return storageErr(op, err)
}

// storageErr wraps an infrastructure failure so callers can match
// ledger.ErrStorageUnavailable while the original cause stays visible.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ledger.ErrStorageUnavailable, err)
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// GetAccount returns the account or ledger.ErrAccountNotFound.
func (s *Store) GetAccount(ctx context.Context, id ledger.AccountID) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getAccount(ctx, s.db, id)
}

func getAccount(ctx context.Context, db dbtx, id ledger.AccountID) (*ledger.Account, error) {
	row := db.QueryRowContext(ctx, accountSelect+" WHERE id = ?", id)
	return scanAccount(row)
}

// GetAccountByCode returns the account with the code or ledger.ErrAccountNotFound.
func (s *Store) GetAccountByCode(ctx context.Context, code string) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getAccountByCode(ctx, s.db, code)
}

func getAccountByCode(ctx context.Context, db dbtx, code string) (*ledger.Account, error) {
	row := db.QueryRowContext(ctx, accountSelect+" WHERE code = ?", code)
	return scanAccount(row)
}

const accountSelect = `
	SELECT id, code, name, type, parent_id, active, balance, description, created_at, updated_at
	FROM accounts`

// rowScanner lets scanAccountFields serve both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row *sql.Row) (*ledger.Account, error) {
	a, err := scanAccountFields(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, storageErr("scanning account", err)
	}
	return a, nil
}

func scanAccountFields(row rowScanner) (*ledger.Account, error) {
	var (
		a           ledger.Account
		parentID    sql.NullString
		balance     int64
		description sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &parentID, &a.Active,
		&balance, &description, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	a.ParentID = ledger.AccountID(parentID.String)
	a.Balance = fromCents(balance)
	a.Description = description.String
	a.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	a.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &a, nil
}

// ListAccounts returns accounts ordered by code.
func (s *Store) ListAccounts(ctx context.Context, includeInactive bool) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := accountSelect
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY code ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("listing accounts", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		a, err := scanAccountFields(rows)
		if err != nil {
			return nil, storageErr("scanning account", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// SaveAccount inserts or updates an account. The balance column is
// written only on insert; updates go through ApplyBalanceDelta.
func (s *Store) SaveAccount(ctx context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAccount(ctx, s.db, a)
}

func saveAccount(ctx context.Context, db dbtx, a ledger.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, type, parent_id, active, balance, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			type = excluded.type,
			parent_id = excluded.parent_id,
			active = excluded.active,
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(timeLayout)
	_, err := db.ExecContext(ctx, query,
		a.ID, a.Code, a.Name, a.Type, nullString(string(a.ParentID)), a.Active,
		toCents(a.Balance), nullString(a.Description), now, now,
	)
	return mapWriteError("saving account", err)
}

// ApplyBalanceDelta atomically adds delta to the account's balance.
func (s *Store) ApplyBalanceDelta(ctx context.Context, id ledger.AccountID, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return applyBalanceDelta(ctx, s.db, id, delta)
}

func applyBalanceDelta(ctx context.Context, db dbtx, id ledger.AccountID, delta decimal.Decimal) error {
	res, err := db.ExecContext(ctx,
		"UPDATE accounts SET balance = balance + ?, updated_at = ? WHERE id = ?",
		toCents(delta), time.Now().UTC().Format(timeLayout), id,
	)
	if err != nil {
		return storageErr("applying balance delta", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("applying balance delta", err)
	}
	if n == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// InsertTransaction persists a header and its entries.
func (s *Store) InsertTransaction(ctx context.Context, tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertTransaction(ctx, s.db, tx)
}

func insertTransaction(ctx context.Context, db dbtx, tx ledger.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, reference, date, description, total, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Reference, tx.Date.Format(dateLayout), tx.Description,
		toCents(tx.Total), tx.CreatedBy,
		tx.CreatedAt.Format(timeLayout), tx.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return mapWriteError("inserting transaction", err)
	}

	for i, e := range tx.Entries {
		_, err := db.ExecContext(ctx, `
			INSERT INTO entries (id, transaction_id, account_id, line_no, debit, credit, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, tx.ID, e.AccountID, i,
			toCents(e.Debit), toCents(e.Credit), nullString(e.Description),
		)
		if err != nil {
			return mapWriteError("inserting entry", err)
		}
	}
	return nil
}

const transactionSelect = `
	SELECT id, reference, date, description, total, created_by, created_at, updated_at
	FROM transactions`

// GetTransaction returns the transaction with ordered entries or
// ledger.ErrTransactionNotFound.
func (s *Store) GetTransaction(ctx context.Context, id ledger.TransactionID) (*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getTransactionWhere(ctx, s.db, " WHERE id = ?", id)
}

// GetTransactionByReference is GetTransaction keyed by reference.
func (s *Store) GetTransactionByReference(ctx context.Context, ref string) (*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getTransactionWhere(ctx, s.db, " WHERE reference = ?", ref)
}

func getTransactionWhere(ctx context.Context, db dbtx, where string, arg any) (*ledger.Transaction, error) {
	row := db.QueryRowContext(ctx, transactionSelect+where, arg)
	tx, err := scanTransactionRow(row)
	if err != nil {
		return nil, err
	}
	if err := loadEntries(ctx, db, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func scanTransactionRow(row *sql.Row) (*ledger.Transaction, error) {
	tx, err := scanTransactionFields(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, storageErr("scanning transaction", err)
	}
	return tx, nil
}

func scanTransactionFields(row rowScanner) (*ledger.Transaction, error) {
	var (
		tx        ledger.Transaction
		date      string
		total     int64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&tx.ID, &tx.Reference, &date, &tx.Description, &total,
		&tx.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	tx.Date, _ = time.Parse(dateLayout, date)
	tx.Total = fromCents(total)
	tx.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	tx.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &tx, nil
}

// loadEntries attaches the transaction's entries in insertion order,
// joined with each account's current code/name for display.
func loadEntries(ctx context.Context, db dbtx, tx *ledger.Transaction) error {
	rows, err := db.QueryContext(ctx, `
		SELECT e.id, e.account_id, e.debit, e.credit, e.description, a.code, a.name
		FROM entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE e.transaction_id = ?
		ORDER BY e.line_no ASC`,
		tx.ID,
	)
	if err != nil {
		return storageErr("loading entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e           ledger.Entry
			debit       int64
			credit      int64
			description sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &debit, &credit, &description,
			&e.AccountCode, &e.AccountName); err != nil {
			return storageErr("scanning entry", err)
		}
		e.TransactionID = tx.ID
		e.Debit = fromCents(debit)
		e.Credit = fromCents(credit)
		e.Description = description.String
		tx.Entries = append(tx.Entries, e)
	}
	return rows.Err()
}

// filterClause builds the WHERE clause and args for a ledger.Filter.
func filterClause(f ledger.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.DateFrom != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.DateFrom.Format(dateLayout))
	}
	if f.DateTo != nil {
		conds = append(conds, "date <= ?")
		args = append(args, f.DateTo.Format(dateLayout))
	}
	if f.CreatedBy != "" {
		conds = append(conds, "created_by = ?")
		args = append(args, f.CreatedBy)
	}
	if f.Reference != "" {
		conds = append(conds, "reference = ?")
		args = append(args, f.Reference)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const listOrder = " ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?"

// ListTransactions returns filtered transactions, most recent first.
func (s *Store) ListTransactions(ctx context.Context, f ledger.Filter, limit, offset int) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filterClause(f)
	args = append(args, limit, offset)
	return s.queryTransactions(ctx, transactionSelect+where+listOrder, args...)
}

// ListTransactionsByAccount returns transactions touching the account.
func (s *Store) ListTransactionsByAccount(ctx context.Context, id ledger.AccountID, limit, offset int) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT t.id, t.reference, t.date, t.description, t.total, t.created_by, t.created_at, t.updated_at
		FROM transactions t
		WHERE EXISTS (
			SELECT 1 FROM entries e WHERE e.transaction_id = t.id AND e.account_id = ?
		)
		ORDER BY t.date DESC, t.created_at DESC LIMIT ? OFFSET ?`
	return s.queryTransactions(ctx, query, id, limit, offset)
}

// SearchTransactions matches text case-insensitively against
// description or reference.
func (s *Store) SearchTransactions(ctx context.Context, text string, limit, offset int) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.ToLower(text) + "%"
	query := transactionSelect + `
	WHERE LOWER(description) LIKE ? OR LOWER(reference) LIKE ?` + listOrder
	return s.queryTransactions(ctx, query, pattern, pattern, limit, offset)
}

// CountTransactions returns the number of transactions matching f.
func (s *Store) CountTransactions(ctx context.Context, f ledger.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filterClause(f)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&count)
	if err != nil {
		return 0, storageErr("counting transactions", err)
	}
	return count, nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("querying transactions", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransactionFields(rows)
		if err != nil {
			return nil, storageErr("scanning transaction", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("querying transactions", err)
	}

	for i := range txs {
		if err := loadEntries(ctx, s.db, &txs[i]); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

// SumEntriesThrough returns total debits and credits posted to the
// account across transactions dated on or before asOf.
func (s *Store) SumEntriesThrough(ctx context.Context, id ledger.AccountID, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sumEntriesThrough(ctx, s.db, id, asOf)
}

func sumEntriesThrough(ctx context.Context, db dbtx, id ledger.AccountID, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits int64
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM entries e
		JOIN transactions t ON t.id = e.transaction_id
		WHERE e.account_id = ? AND t.date <= ?`,
		id, asOf.Format(dateLayout),
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, storageErr("summing entries", err)
	}
	return fromCents(debits), fromCents(credits), nil
}

// =============================================================================
// UNIT OF WORK (ledger.TxStore)
// =============================================================================

// WithTx executes fn within a database transaction. All statements
// issued through the passed Store run on the same *sql.Tx, so the
// transaction header, entries and balance deltas commit together or
// not at all.
func (s *Store) WithTx(ctx context.Context, fn func(ledger.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// txStore routes every statement through the open *sql.Tx. The parent
// mutex is already held by WithTx, so no additional locking here.
type txStore struct {
	tx *sql.Tx
}

var _ ledger.Store = (*txStore)(nil)

func (ts *txStore) GetAccount(ctx context.Context, id ledger.AccountID) (*ledger.Account, error) {
	return getAccount(ctx, ts.tx, id)
}

func (ts *txStore) GetAccountByCode(ctx context.Context, code string) (*ledger.Account, error) {
	return getAccountByCode(ctx, ts.tx, code)
}

func (ts *txStore) ListAccounts(ctx context.Context, includeInactive bool) ([]ledger.Account, error) {
	rows, err := ts.tx.QueryContext(ctx, accountSelect+" ORDER BY code ASC")
	if err != nil {
		return nil, storageErr("listing accounts", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		a, err := scanAccountFields(rows)
		if err != nil {
			return nil, storageErr("scanning account", err)
		}
		if !includeInactive && !a.Active {
			continue
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (ts *txStore) SaveAccount(ctx context.Context, a ledger.Account) error {
	return saveAccount(ctx, ts.tx, a)
}

func (ts *txStore) ApplyBalanceDelta(ctx context.Context, id ledger.AccountID, delta decimal.Decimal) error {
	return applyBalanceDelta(ctx, ts.tx, id, delta)
}

func (ts *txStore) InsertTransaction(ctx context.Context, tx ledger.Transaction) error {
	return insertTransaction(ctx, ts.tx, tx)
}

func (ts *txStore) GetTransaction(ctx context.Context, id ledger.TransactionID) (*ledger.Transaction, error) {
	return getTransactionWhere(ctx, ts.tx, " WHERE id = ?", id)
}

func (ts *txStore) GetTransactionByReference(ctx context.Context, ref string) (*ledger.Transaction, error) {
	return getTransactionWhere(ctx, ts.tx, " WHERE reference = ?", ref)
}

func (ts *txStore) ListTransactions(ctx context.Context, f ledger.Filter, limit, offset int) ([]ledger.Transaction, error) {
	return nil, storageErr("listing transactions", errUnsupportedInTx)
}

func (ts *txStore) ListTransactionsByAccount(ctx context.Context, id ledger.AccountID, limit, offset int) ([]ledger.Transaction, error) {
	return nil, storageErr("listing transactions by account", errUnsupportedInTx)
}

func (ts *txStore) SearchTransactions(ctx context.Context, text string, limit, offset int) ([]ledger.Transaction, error) {
	return nil, storageErr("searching transactions", errUnsupportedInTx)
}

func (ts *txStore) CountTransactions(ctx context.Context, f ledger.Filter) (int, error) {
	return 0, storageErr("counting transactions", errUnsupportedInTx)
}

func (ts *txStore) SumEntriesThrough(ctx context.Context, id ledger.AccountID, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return sumEntriesThrough(ctx, ts.tx, id, asOf)
}

var errUnsupportedInTx = fmt.Errorf("operation not supported inside a unit of work")

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
