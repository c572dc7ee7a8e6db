package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"bankbuddy/internal/domain"
	"bankbuddy/internal/errors"
	"bankbuddy/internal/repository"
)

type AccountService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewAccountService(store *repository.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

func (s *AccountService) CreateAccount(name string, initialBalance decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Creating account", "name", name, "initial_balance", initialBalance)

	if initialBalance.IsNegative() {
		return nil, errors.ErrNegativeBalance
	}

	account, err := s.store.Account().CreateAccount(name, initialBalance)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account created successfully", "account_id", account.ID)
	return account, nil
}

func (s *AccountService) GetAccount(accountID int64) (*domain.Account, error) {
	return s.store.Account().GetAccount(accountID)
}

func (s *AccountService) ListAccounts() ([]*domain.Account, error) {
	return s.store.Account().ListAccounts()
}

// RenameAccount changes the account label, leaving id and balance untouched.
func (s *AccountService) RenameAccount(accountID int64, name string) error {
	s.logger.Info("Renaming account", "account_id", accountID, "name", name)

	if _, err := s.store.Account().GetAccount(accountID); err != nil {
		return err
	}

	return s.store.Account().RenameAccount(accountID, name)
}
