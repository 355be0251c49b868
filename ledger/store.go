/*
store.go - Persistence interface for accounts, transactions and entries

PURPOSE:
  Defines the boundary between the domain logic and the database.
  The Engine and Query layers only ever talk to these interfaces;
  store/sqlite provides the production implementation.

ATOMICITY CONTRACT:
  TxStore.WithTx is the unit-of-work used by Engine.Record: the
  transaction header, its entries and every affected account balance
  are written inside one call, committed together or not at all.

BALANCE CONTRACT:
  ApplyBalanceDelta is a RELATIVE update (balance = balance + delta)
  executed inside the storage transaction. Two concurrent recordings
  touching the same account can therefore never lose an update the way
  a read-then-write sequence would.

SEE ALSO:
  - engine.go: The only caller of the write path
  - store/sqlite/sqlite.go: Concrete implementation
*/
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter restricts transaction listings. Zero values mean "no constraint".
type Filter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	CreatedBy string
	Reference string
}

// Store handles persistence of accounts, transactions and entries.
//
// Posted transactions are immutable: there are no update or delete
// methods for them. Account balances change only via ApplyBalanceDelta.
type Store interface {
	// --- Accounts ---

	// GetAccount returns the account or ErrAccountNotFound.
	GetAccount(ctx context.Context, id AccountID) (*Account, error)

	// GetAccountByCode returns the account with the given code or
	// ErrAccountNotFound.
	GetAccountByCode(ctx context.Context, code string) (*Account, error)

	// ListAccounts returns accounts ordered by code. Inactive accounts
	// are included only when includeInactive is set.
	ListAccounts(ctx context.Context, includeInactive bool) ([]Account, error)

	// SaveAccount inserts or updates an account record. It never writes
	// the balance column on update; ErrDuplicateCode on a taken code.
	SaveAccount(ctx context.Context, a Account) error

	// ApplyBalanceDelta atomically adds delta to the account's balance.
	ApplyBalanceDelta(ctx context.Context, id AccountID, delta decimal.Decimal) error

	// --- Transactions ---

	// InsertTransaction persists a header and its entries. Returns
	// ErrDuplicateReference if the reference is already taken.
	InsertTransaction(ctx context.Context, tx Transaction) error

	// GetTransaction returns the transaction with ordered entries joined
	// with account code/name, or ErrTransactionNotFound.
	GetTransaction(ctx context.Context, id TransactionID) (*Transaction, error)

	// GetTransactionByReference is GetTransaction keyed by reference.
	GetTransactionByReference(ctx context.Context, ref string) (*Transaction, error)

	// ListTransactions returns filtered transactions ordered by date
	// descending then creation time descending.
	ListTransactions(ctx context.Context, f Filter, limit, offset int) ([]Transaction, error)

	// ListTransactionsByAccount returns transactions having at least one
	// entry against the account, same ordering as ListTransactions.
	ListTransactionsByAccount(ctx context.Context, id AccountID, limit, offset int) ([]Transaction, error)

	// SearchTransactions matches text case-insensitively against
	// description or reference.
	SearchTransactions(ctx context.Context, text string, limit, offset int) ([]Transaction, error)

	// CountTransactions returns the number of transactions matching f.
	CountTransactions(ctx context.Context, f Filter) (int, error)

	// SumEntriesThrough returns the total debits and credits posted to
	// the account across all transactions dated on or before asOf.
	SumEntriesThrough(ctx context.Context, id AccountID, asOf time.Time) (debits, credits decimal.Decimal, err error)
}

// TxStore extends Store with a unit-of-work.
type TxStore interface {
	Store

	// WithTx executes fn within a storage transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(Store) error) error
}
