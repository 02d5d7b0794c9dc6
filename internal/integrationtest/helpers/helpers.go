// Package helpers provides shared seed and fixture helpers for tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/finledger/internal/accountrepo"
	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/internal/transactionrepo"
	"github.com/finledger/finledger/internal/userrepo"
	"github.com/finledger/finledger/pkg/dbpkg"
	"github.com/finledger/finledger/pkg/passpkg"
	"github.com/finledger/finledger/pkg/randompkg"
)

// RandomAccount returns an in-memory random account for the given owner.
func RandomAccount(owner string) domain.Account {
	return domain.Account{
		ID:        int32(randompkg.Intn(1000)) + 1,
		Owner:     owner,
		Name:      randompkg.AccountName(),
		Currency:  randompkg.Currency(),
		Balance:   randompkg.MoneyAmountBetween(1_000, 10_000),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
		UpdatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// SeedUser creates a random user in the test database.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an account with the given balance and currency in the test database.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, owner, balance, currency string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	arg := domain.CreateAccountParams{
		Owner:    owner,
		Name:     randompkg.AccountName(),
		Currency: currency,
		Balance:  balance,
	}

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction records a transaction against the given account in the test database.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, accountID int32, transactionType domain.TransactionType, amount string) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewTxRepoPGS(db)

	arg := domain.RecordTransactionParams{
		AccountID: accountID,
		Type:      transactionType,
		Amount:    amount,
	}

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}
