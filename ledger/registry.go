/*
registry.go - Chart-of-accounts lookup and administration

PURPOSE:
  The Registry is the source of truth for valid posting targets and
  their type/sign convention. The Engine consults it during
  validation; account administration (create, rename, deactivate)
  also lives here, with the one hard rule that balances are never
  written through this surface - balance mutation is reserved to the
  Engine's posting path.

SEE ALSO:
  - codes.go: Code format and type-implication rules
  - engine.go: Consumer of Get/IsPostable/TypeOf
*/
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Registry is the lookup and administration surface over accounts.
type Registry struct {
	store Store
}

// NewRegistry creates a registry over the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Get returns the account or ErrAccountNotFound.
func (r *Registry) Get(ctx context.Context, id AccountID) (*Account, error) {
	return r.store.GetAccount(ctx, id)
}

// GetByCode returns the account with the given code or ErrAccountNotFound.
func (r *Registry) GetByCode(ctx context.Context, code string) (*Account, error) {
	return r.store.GetAccountByCode(ctx, code)
}

// List returns accounts ordered by code.
func (r *Registry) List(ctx context.Context, includeInactive bool) ([]Account, error) {
	return r.store.ListAccounts(ctx, includeInactive)
}

// IsPostable reports whether the account exists and is active.
func (r *Registry) IsPostable(ctx context.Context, id AccountID) (bool, error) {
	a, err := r.store.GetAccount(ctx, id)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.Active, nil
}

// TypeOf returns the account's type, used by the Engine to pick the
// balance-sign rule.
func (r *Registry) TypeOf(ctx context.Context, id AccountID) (AccountType, error) {
	a, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return "", err
	}
	return a.Type, nil
}

// Create validates and persists a new account with a zero balance.
// The caller supplies code, name, type, optional parent code and
// description; identity and timestamps are assigned here.
func (r *Registry) Create(ctx context.Context, a Account) (*Account, error) {
	if !a.Type.Valid() {
		return nil, fmt.Errorf("invalid account type %q: %w", a.Type, ErrCodeTypeMismatch)
	}

	var parent *Account
	if a.ParentID != "" {
		p, err := r.store.GetAccount(ctx, a.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolving parent: %w", err)
		}
		parent = p
	}
	if err := CheckCode(a.Code, a.Type, parent); err != nil {
		return nil, err
	}

	a.ID = AccountID(uuid.NewString())
	a.Active = true
	a.Balance = decimal.Zero
	if err := r.store.SaveAccount(ctx, a); err != nil {
		return nil, err
	}
	return r.store.GetAccount(ctx, a.ID)
}

// Rename updates the account's name and description.
func (r *Registry) Rename(ctx context.Context, id AccountID, name, description string) (*Account, error) {
	a, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = name
	a.Description = description
	if err := r.store.SaveAccount(ctx, *a); err != nil {
		return nil, err
	}
	return r.store.GetAccount(ctx, id)
}

// Deactivate marks the account as no longer postable. Accounts are
// never physically deleted once referenced by an entry.
func (r *Registry) Deactivate(ctx context.Context, id AccountID) error {
	a, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	a.Active = false
	return r.store.SaveAccount(ctx, *a)
}

// SeedDefaultChart installs any DefaultChart entries that are not
// already present. Existing accounts are left untouched.
func (r *Registry) SeedDefaultChart(ctx context.Context) (created int, err error) {
	byCode := make(map[string]AccountID)
	for _, entry := range DefaultChart {
		existing, err := r.store.GetAccountByCode(ctx, entry.Code)
		if err == nil {
			byCode[entry.Code] = existing.ID
			continue
		}
		if !IsNotFound(err) {
			return created, err
		}

		a := Account{
			Code:        entry.Code,
			Name:        entry.Name,
			Type:        entry.Type,
			Description: entry.Description,
		}
		if entry.ParentCode != "" {
			a.ParentID = byCode[entry.ParentCode]
		}
		made, err := r.Create(ctx, a)
		if err != nil {
			return created, fmt.Errorf("seeding %s: %w", entry.Code, err)
		}
		byCode[entry.Code] = made.ID
		created++
	}
	return created, nil
}
