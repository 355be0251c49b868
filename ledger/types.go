/*
Package ledger implements a double-entry bookkeeping engine.

PURPOSE:
  This package contains the domain types and algorithms for recording
  financial transactions as balanced sets of journal entries and for
  maintaining running account balances. The fundamental invariant is
  that every recorded transaction has total debits equal to total
  credits, exactly, at 2-decimal fixed-point precision.

KEY CONCEPTS IN THIS FILE (types.go):
  - Account: A node in the chart of accounts with a type and balance
  - Transaction: A balanced financial event with at least two entries
  - Entry: One debit or credit posting against a single account
  - Draft: A caller-supplied transaction awaiting validation

DESIGN PRINCIPLES:
  1. Immutability: Posted transactions are never modified
  2. Precision: decimal.Decimal everywhere, never float64
  3. Sign convention: asset/expense accounts are debit-normal,
     liability/equity/revenue accounts are credit-normal
  4. Balance is engine-owned: only the posting path mutates it

SEE ALSO:
  - engine.go: Validation and atomic recording
  - registry.go: Chart-of-accounts lookup surface
  - query.go: Read-only retrieval views
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AccountID string
type TransactionID string
type EntryID string

// =============================================================================
// ACCOUNT TYPES - The five classes of the chart of accounts
// =============================================================================

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether balances of this type increase with debits.
// Asset and expense accounts are debit-normal; liability, equity and
// revenue accounts are credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// BalanceDelta returns the signed effect on an account of type t of posting
// the given debit and credit totals. This is the core double-entry sign
// convention: it encodes accounting semantics, not merely a sum.
//
//	asset/expense:            delta = debits - credits
//	liability/equity/revenue: delta = credits - debits
func BalanceDelta(t AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// =============================================================================
// ACCOUNT - A node in the chart of accounts
// =============================================================================

// Account is a posting target in the chart of accounts.
//
// Balance is exclusively mutated by the Engine as a side effect of
// recording transactions; it is never set directly by a client.
// Accounts are deactivated rather than deleted once referenced.
type Account struct {
	ID          AccountID
	Code        string // short alphanumeric, unique; leading digit 1..5 implies type
	Name        string
	Type        AccountType
	ParentID    AccountID // empty = top-level
	Active      bool
	Balance     decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// =============================================================================
// TRANSACTION - A balanced financial event
// =============================================================================

// Transaction is an immutable, balanced set of journal entries.
// Total always equals the sum of debit legs (and of credit legs).
type Transaction struct {
	ID          TransactionID
	Reference   string // unique, human-legible, e.g. "TXN-20240115-A41F09"
	Date        time.Time
	Description string
	Total       decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Entries     []Entry // insertion order
}

// Entry is one account-level posting belonging to a transaction.
// Exactly one of Debit/Credit is expected to be nonzero in well-formed
// input, but only the transaction-level balance is enforced.
type Entry struct {
	ID            EntryID
	TransactionID TransactionID
	AccountID     AccountID
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Description   string

	// AccountCode and AccountName are joined from the account at read time
	// for display. They are not persisted on the entry.
	AccountCode string
	AccountName string
}

// =============================================================================
// DRAFT - Caller input to Engine.Record
// =============================================================================

// Draft is a transaction submission before validation and posting.
type Draft struct {
	Date        time.Time
	Description string
	CreatedBy   string
	Lines       []DraftLine
}

// DraftLine is one requested posting within a Draft.
type DraftLine struct {
	AccountID   AccountID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// Totals returns the debit and credit sums across all lines.
func (d Draft) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range d.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}
