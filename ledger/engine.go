/*
engine.go - Validation and atomic recording of transactions

PURPOSE:
  The Engine is the ONLY path by which transactions, entries and
  account balances change together. Record validates a draft, then
  persists the header, its entries and every affected account's
  balance delta as one atomic unit of work.

VALIDATION ORDER (each a distinct failure mode):
  1. Structure: at least 2 lines, non-negative amounts, max 2 decimal
     places -> MalformedError
  2. Accounts: every referenced account exists and is active
     -> UnknownAccountError (first offender named)
  3. Balance: sum(debits) == sum(credits) as exact decimals
     -> UnbalancedError

ATOMICITY:
  All writes happen inside TxStore.WithTx. Any failure rolls the whole
  unit back: a transaction never exists with some but not all of its
  entries, and a balance is never updated without the transaction
  being durably recorded, or vice versa.

CONCURRENCY:
  Balance updates are expressed as relative deltas applied inside the
  storage transaction (see store.go), so two concurrent recordings
  against the same account cannot lose an update. Reference
  uniqueness is enforced by the storage unique index; a violation
  restarts the atomic unit with a fresh candidate, up to
  MaxReferenceAttempts.

SEE ALSO:
  - registry.go: Account lookups used during validation
  - reference.go: Candidate generation
  - query.go: Read-only views over recorded data
*/
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine records balanced transactions against the chart of accounts.
type Engine struct {
	store    TxStore
	registry *Registry
	refs     *ReferenceAllocator
}

// NewEngine creates an engine over the given store, allocating
// references with the default prefix.
func NewEngine(store TxStore) *Engine {
	return NewEngineWithAllocator(store, NewReferenceAllocator(""))
}

// NewEngineWithAllocator creates an engine with a custom reference
// allocator (e.g. a configured prefix).
func NewEngineWithAllocator(store TxStore, refs *ReferenceAllocator) *Engine {
	return &Engine{
		store:    store,
		registry: NewRegistry(store),
		refs:     refs,
	}
}

// Registry exposes the engine's account lookup surface.
func (e *Engine) Registry() *Registry { return e.registry }

// Record validates the draft and persists it atomically, returning the
// fully materialized transaction including its entries.
//
// No write happens before validation succeeds. Per-line debit/credit
// exclusivity is deliberately NOT enforced; only the transaction-level
// balance is checked.
func (e *Engine) Record(ctx context.Context, draft Draft) (*Transaction, error) {
	types, err := e.validate(ctx, draft)
	if err != nil {
		return nil, err
	}

	debits, _ := draft.Totals()
	total := debits

	// Aggregate each account's contribution so exactly one balance delta
	// is applied per distinct account.
	deltas := make(map[AccountID]decimal.Decimal)
	var order []AccountID
	for _, l := range draft.Lines {
		if _, seen := deltas[l.AccountID]; !seen {
			order = append(order, l.AccountID)
		}
		deltas[l.AccountID] = deltas[l.AccountID].Add(
			BalanceDelta(types[l.AccountID], l.Debit, l.Credit))
	}

	for attempt := 0; attempt < MaxReferenceAttempts; attempt++ {
		tx := e.materialize(draft, total)

		err := e.store.WithTx(ctx, func(s Store) error {
			if err := s.InsertTransaction(ctx, tx); err != nil {
				return err
			}
			for _, id := range order {
				if err := s.ApplyBalanceDelta(ctx, id, deltas[id]); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, ErrDuplicateReference) {
			continue // new candidate, whole unit retried
		}
		if err != nil {
			return nil, err
		}
		return e.store.GetTransaction(ctx, tx.ID)
	}

	return nil, fmt.Errorf("allocating reference after %d attempts: %w",
		MaxReferenceAttempts, ErrReferenceExhausted)
}

// validate runs the ordered precondition checks and resolves the type
// of every referenced account.
func (e *Engine) validate(ctx context.Context, draft Draft) (map[AccountID]AccountType, error) {
	if len(draft.Lines) < 2 {
		return nil, &MalformedError{Reason: fmt.Sprintf(
			"a transaction requires at least 2 entry lines, got %d", len(draft.Lines))}
	}
	for i, l := range draft.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, &MalformedError{Reason: fmt.Sprintf(
				"line %d: amounts must not be negative", i+1)}
		}
		if !fixedTwoPlaces(l.Debit) || !fixedTwoPlaces(l.Credit) {
			return nil, &MalformedError{Reason: fmt.Sprintf(
				"line %d: amounts must have at most 2 decimal places", i+1)}
		}
	}

	types := make(map[AccountID]AccountType)
	for _, l := range draft.Lines {
		if _, seen := types[l.AccountID]; seen {
			continue
		}
		a, err := e.store.GetAccount(ctx, l.AccountID)
		if IsNotFound(err) {
			return nil, &UnknownAccountError{AccountID: l.AccountID}
		}
		if err != nil {
			return nil, err
		}
		if !a.Active {
			return nil, &UnknownAccountError{AccountID: l.AccountID}
		}
		types[l.AccountID] = a.Type
	}

	debits, credits := draft.Totals()
	if !debits.Equal(credits) {
		return nil, &UnbalancedError{Debits: debits, Credits: credits}
	}

	return types, nil
}

// fixedTwoPlaces reports whether d has no more than 2 decimal places.
func fixedTwoPlaces(d decimal.Decimal) bool {
	scaled := d.Mul(decimal.NewFromInt(100))
	return scaled.Equal(scaled.Floor())
}

// materialize builds the persistable transaction with fresh identity,
// reference candidate and timestamps.
func (e *Engine) materialize(draft Draft, total decimal.Decimal) Transaction {
	now := time.Now().UTC()
	tx := Transaction{
		ID:          TransactionID(uuid.NewString()),
		Reference:   e.refs.Candidate(),
		Date:        draft.Date,
		Description: draft.Description,
		Total:       total,
		CreatedBy:   draft.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, l := range draft.Lines {
		tx.Entries = append(tx.Entries, Entry{
			ID:            EntryID(uuid.NewString()),
			TransactionID: tx.ID,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
		})
	}
	return tx
}
