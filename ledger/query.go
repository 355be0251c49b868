/*
query.go - Read-only views over recorded data

PURPOSE:
  Lookup by id/reference, filtered listing with pagination, per-account
  history, free-text search and balance-as-of-date computation. This
  layer never mutates balances.

AGREEMENT LAW:
  AccountBalance with an as-of date re-derives the signed sum over all
  entries dated on or before that date using the SAME sign convention
  as the posting path (BalanceDelta). For any account with no
  future-dated transactions, the recomputation for "today" equals the
  persisted running balance.
*/
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Query provides read-only retrieval over the ledger.
type Query struct {
	store Store
}

// NewQuery creates a query layer over the given store.
func NewQuery(store Store) *Query {
	return &Query{store: store}
}

// FindByID returns the transaction with its entries in insertion order,
// joined with each account's current code/name for display.
func (q *Query) FindByID(ctx context.Context, id TransactionID) (*Transaction, error) {
	return q.store.GetTransaction(ctx, id)
}

// FindByReference is FindByID keyed by reference number.
func (q *Query) FindByReference(ctx context.Context, ref string) (*Transaction, error) {
	return q.store.GetTransactionByReference(ctx, ref)
}

// FindAll returns filtered transactions, most recent first (date
// descending, then creation time descending), with pagination.
func (q *Query) FindAll(ctx context.Context, f Filter, limit, offset int) ([]Transaction, error) {
	return q.store.ListTransactions(ctx, f, normalizeLimit(limit), offset)
}

// FindByAccount returns transactions having at least one entry against
// the account, same ordering as FindAll.
func (q *Query) FindByAccount(ctx context.Context, id AccountID, limit, offset int) ([]Transaction, error) {
	if _, err := q.store.GetAccount(ctx, id); err != nil {
		return nil, err
	}
	return q.store.ListTransactionsByAccount(ctx, id, normalizeLimit(limit), offset)
}

// Search matches text case-insensitively against description or
// reference number.
func (q *Query) Search(ctx context.Context, text string, limit, offset int) ([]Transaction, error) {
	return q.store.SearchTransactions(ctx, text, normalizeLimit(limit), offset)
}

// Count returns the number of transactions matching the filter, for
// pagination metadata.
func (q *Query) Count(ctx context.Context, f Filter) (int, error) {
	return q.store.CountTransactions(ctx, f)
}

// AccountBalance returns the account's balance. With a nil asOf it is
// the persisted running balance; otherwise it is recomputed from
// scratch over all entries dated on or before asOf.
func (q *Query) AccountBalance(ctx context.Context, id AccountID, asOf *time.Time) (decimal.Decimal, error) {
	a, err := q.store.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if asOf == nil {
		return a.Balance, nil
	}
	debits, credits, err := q.store.SumEntriesThrough(ctx, id, *asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return BalanceDelta(a.Type, debits, credits), nil
}

const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
