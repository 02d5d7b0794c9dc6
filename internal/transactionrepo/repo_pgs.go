// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/finledger/finledger/internal/accountrepo"
	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/pkg/dbpkg"
	"github.com/finledger/finledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with a connection to start db transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns transaction RepoPGS bound to an already running db transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, type, amount, description)
VALUES
    ($1, $2, $3, NULLIF($4, ''))
RETURNING id, account_id, type, amount, COALESCE(description, ''), created_at
`

// Create inserts the transaction row and then returns it.
// Transactions are immutable after insert.
func (r *RepoPGS) Create(ctx context.Context, arg domain.RecordTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.AccountID, arg.Type, arg.Amount, arg.Description)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrNonPositiveAmount
			case "transactions_type_check":
				return t, domain.ErrInvalidTransactionType
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listBaseQuery = `
SELECT
	t.id, t.account_id, t.type, t.amount, COALESCE(t.description, ''), t.created_at,
	a.name, a.currency
FROM transactions t
JOIN accounts a ON a.id = t.account_id
WHERE a.owner = $1
`

// List returns the owner's transactions joined with the owning account's name
// and currency. All supplied filters narrow the result conjunctively; date
// bounds are inclusive. Ordering is newest first to keep listings deterministic.
func (r *RepoPGS) List(ctx context.Context, owner string, arg domain.ListTransactionsParams) ([]domain.TransactionWithAccount, error) {
	l := zerolog.Ctx(ctx)

	var sb strings.Builder

	sb.WriteString(listBaseQuery)

	args := []interface{}{owner}

	if arg.AccountID != 0 {
		args = append(args, arg.AccountID)
		fmt.Fprintf(&sb, " AND t.account_id = $%d", len(args))
	}

	if !arg.StartDate.IsZero() {
		args = append(args, arg.StartDate)
		fmt.Fprintf(&sb, " AND t.created_at >= $%d", len(args))
	}

	if !arg.EndDate.IsZero() {
		args = append(args, arg.EndDate)
		fmt.Fprintf(&sb, " AND t.created_at <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY t.created_at DESC, t.id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionWithAccount{}

	for rows.Next() {
		var t domain.TransactionWithAccount
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.Description,
			&t.CreatedAt,
			&t.AccountName,
			&t.AccountCurrency,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// RecordTx appends a transaction and applies its signed amount to the owning
// account's balance within a single db transaction.
//
// Both writes commit or neither does: a transaction row without its balance
// effect would leave the ledger inconsistent. The balance change itself is an
// atomic increment, so concurrent recordings against the same account cannot
// lose updates.
func (r *RepoPGS) RecordTx(ctx context.Context, arg domain.RecordTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionTxResult

	// A repo built with NewTxRepoPGS has no connection to start a new
	// db transaction from.
	if r.conn == nil {
		l.Error().Msg("RecordTx called on a repo without a db connection")
		return result, errorspkg.ErrInternal
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	txRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Transaction, err = txRepo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	delta := arg.Amount
	if arg.Type == domain.Withdrawal {
		delta = "-" + arg.Amount
	}

	result.Account, err = accountRepo.AddBalance(ctx, delta, arg.AccountID)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}
