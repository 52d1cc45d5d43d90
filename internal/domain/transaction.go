// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("Transaction not found")
	// ErrTransactionOwnerMismatch indicates that the transaction belongs to another user.
	ErrTransactionOwnerMismatch = errors.New("You can only delete your own transactions")
	// ErrInvalidAmount indicates that the given amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("Invalid amount provided")
	// ErrInvalidDate indicates that the given date does not parse to a calendar date.
	ErrInvalidDate = errors.New("Invalid date provided")
	// ErrCategoryNotSupported indicates that the category is not in the fixed category set.
	ErrCategoryNotSupported = errors.New("Category is not supported")
	// ErrDescriptionLength indicates that the description is outside the 3-100 character bounds.
	ErrDescriptionLength = errors.New("Description must be between 3 and 100 characters")
	// ErrStoreUnavailable indicates that the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("Store unavailable")
)

// Transaction holds a single income or expense record of one user.
//
// The sign of Amount is the sole authority on direction: positive is
// income, negative is expense. Owner is immutable after creation.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Owner       string          `json:"owner"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// CreateTransactionParams is the validated input to create a Transaction.
type CreateTransactionParams struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Owner       string          `json:"owner"`
}
