// Package ledgerservice couples transaction insertion with balance recomputation.
package ledgerservice

import (
	"context"

	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/pkg/moneypkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	RecordTx(ctx context.Context, arg domain.RecordTransactionParams) (domain.TransactionTxResult, error)
	List(ctx context.Context, owner string, arg domain.ListTransactionsParams) ([]domain.TransactionWithAccount, error)
}

// AccountService resolves accounts scoped to their owner.
type AccountService interface {
	Get(ctx context.Context, id int32, owner string) (domain.Account, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns ledger service struct to manage ledger business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

func (s *Service) validRequest(ctx context.Context, owner string, arg domain.RecordTransactionParams) error {
	l := zerolog.Ctx(ctx)

	if !arg.Type.IsValid() {
		return domain.ErrInvalidTransactionType
	}

	if !moneypkg.IsValidAmount(arg.Amount) {
		amountDecimal, err := decimal.NewFromString(arg.Amount)
		if err != nil {
			l.Info().Err(err).Send()
			return domain.ErrInvalidAmount
		}

		if amountDecimal.LessThanOrEqual(decimal.Zero) {
			return domain.ErrNonPositiveAmount
		}

		return domain.ErrInvalidAmount
	}

	// The account must exist and belong to the caller before anything is
	// persisted. A foreign account reads as not found.
	if _, err := s.accountService.Get(ctx, arg.AccountID, owner); err != nil {
		l.Info().Err(err).Send()
		return err
	}

	return nil
}

// Record validates the request and then appends the transaction and adjusts
// the account balance as one atomic unit. On any failure no transaction row
// and no balance change are persisted.
func (s *Service) Record(ctx context.Context, owner string, arg domain.RecordTransactionParams) (domain.TransactionTxResult, error) {
	if err := s.validRequest(ctx, owner, arg); err != nil {
		return domain.TransactionTxResult{}, err
	}

	return s.repo.RecordTx(ctx, arg)
}

// List returns the owner's transactions narrowed by the given filters.
func (s *Service) List(ctx context.Context, owner string, arg domain.ListTransactionsParams) ([]domain.TransactionWithAccount, error) {
	return s.repo.List(ctx, owner, arg)
}
