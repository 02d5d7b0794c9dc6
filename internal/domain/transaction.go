package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates that the amount is not a parsable decimal
	// with at most 4 fractional digits.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount. Direction is
	// carried by the transaction type, never by the sign of the amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInvalidTransactionType indicates an unknown transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// TransactionType enumerates the direction of a monetary movement.
type TransactionType string

// Supported transaction types.
const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// IsValid reports whether the transaction type is supported.
func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is an immutable record of a deposit or withdrawal against one account.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int32           `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RecordTransactionParams is the input data for the ledger mutation transaction.
type RecordTransactionParams struct {
	AccountID   int32           `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
}

// TransactionTxResult is the result of the ledger mutation transaction:
// the inserted transaction together with the account carrying its new balance.
type TransactionTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}

// ListTransactionsParams holds optional conjunctive filters for transaction
// listing. Zero values impose no constraint; date bounds are inclusive.
type ListTransactionsParams struct {
	AccountID int32     `json:"accountId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// TransactionWithAccount is a transaction joined with its owning account's
// name and currency for display.
type TransactionWithAccount struct {
	Transaction
	AccountName     string `json:"accountName"`
	AccountCurrency string `json:"accountCurrency"`
}
