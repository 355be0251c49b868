/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error kinds in one place. Each maps to a distinct failure mode so
  callers can distinguish "fix your input" (malformed, unbalanced,
  unknown account) from "try again" (reference exhaustion, storage).

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, ledger.ErrUnbalancedEntry) { ... }

    var unknown *ledger.UnknownAccountError
    if errors.As(err, &unknown) { log(unknown.AccountID) }

SEE ALSO:
  - engine.go: Produces validation errors before any write
  - store/sqlite: Wraps infrastructure failures with ErrStorageUnavailable
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedTransaction is returned for structurally invalid
	// submissions: fewer than two lines, negative amounts, or amounts
	// with more than two decimal places.
	ErrMalformedTransaction = errors.New("malformed transaction")

	// ErrUnbalancedEntry is returned when total debits do not equal total
	// credits. This is the core domain violation and is never bypassed.
	ErrUnbalancedEntry = errors.New("unbalanced entry: debits != credits")

	// ErrUnknownOrInactiveAccount is returned when a referenced account
	// does not exist or has been deactivated.
	ErrUnknownOrInactiveAccount = errors.New("unknown or inactive account")

	// ErrReferenceExhausted is returned when reference allocation failed
	// after the bounded number of attempts. It signals allocator
	// misconfiguration or severe contention, not ordinary input error.
	ErrReferenceExhausted = errors.New("reference allocation exhausted")

	// ErrStorageUnavailable wraps infrastructure failures. The atomic
	// commit is guaranteed rolled back before this surfaces.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDuplicateReference signals a reference uniqueness violation at
	// insert time. The engine treats it as "retry allocation", never as
	// success; it is not expected to escape Record.
	ErrDuplicateReference = errors.New("duplicate transaction reference")

	// ErrAccountNotFound is returned by lookups for a missing account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned by lookups for a missing transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateCode is returned when creating an account whose code
	// is already taken.
	ErrDuplicateCode = errors.New("duplicate account code")

	// ErrCodeTypeMismatch is returned when an account's stored type
	// disagrees with the type implied by its code. This is a
	// data-integrity error to report, never to silently correct.
	ErrCodeTypeMismatch = errors.New("account code does not match account type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedError describes a structural problem with a submission.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed transaction: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedTransaction }

// UnbalancedError reports the mismatched debit and credit totals.
type UnbalancedError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced entry: debits %s != credits %s",
		e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalancedEntry }

// UnknownAccountError names the first missing or inactive account
// encountered during validation.
type UnknownAccountError struct {
	AccountID AccountID
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown or inactive account %q", e.AccountID)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownOrInactiveAccount }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedTransaction) ||
		errors.Is(err, ErrUnbalancedEntry) ||
		errors.Is(err, ErrUnknownOrInactiveAccount) ||
		errors.Is(err, ErrDuplicateCode) ||
		errors.Is(err, ErrCodeTypeMismatch)
}

// IsRetryable reports whether the whole operation might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrReferenceExhausted) ||
		errors.Is(err, ErrStorageUnavailable)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
