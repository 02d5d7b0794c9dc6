package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is absent or not owned by the caller.
	// Cross-owner access is reported as not found, never as forbidden.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrInvalidBalance indicates that the initial balance is not a valid non-negative decimal.
	ErrInvalidBalance = errors.New("invalid balance")
)

// Account holds a named monetary balance in a given currency, owned by one user.
//
// Balance is a fixed-point decimal string with 4 fractional digits. It equals
// the signed sum of the account's transactions plus the initial balance.
type Account struct {
	ID        int32     `json:"id"`
	Owner     string    `json:"ownerId"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Owner    string `json:"ownerId"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

// UpdateAccountParams is the input data to rename an account or change its
// currency code. Balance is never updated directly.
type UpdateAccountParams struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}
