// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/pkg/moneypkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32, owner string) (domain.Account, error)
	List(ctx context.Context, owner string) ([]domain.Account, error)
	Update(ctx context.Context, id int32, owner string, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32, owner string) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account for the given owner. An empty initial
// balance defaults to zero.
func (s *Service) Create(ctx context.Context, owner string, arg domain.CreateAccountParams) (domain.Account, error) {
	arg.Owner = owner

	if arg.Balance == "" {
		arg.Balance = "0"
	}

	if !moneypkg.IsValidBalance(arg.Balance) {
		return domain.Account{}, domain.ErrInvalidBalance
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the owner's account with the given id.
func (s *Service) Get(ctx context.Context, id int32, owner string) (domain.Account, error) {
	return s.repo.Get(ctx, id, owner)
}

// List returns all accounts owned by the given user.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Account, error) {
	return s.repo.List(ctx, owner)
}

// Update renames the owner's account or changes its currency.
func (s *Service) Update(ctx context.Context, id int32, owner string, arg domain.UpdateAccountParams) (domain.Account, error) {
	return s.repo.Update(ctx, id, owner, arg)
}

// Delete removes the owner's account together with all of its transactions.
func (s *Service) Delete(ctx context.Context, id int32, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}
