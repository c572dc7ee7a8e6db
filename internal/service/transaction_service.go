package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"bankbuddy/internal/domain"
	"bankbuddy/internal/errors"
	"bankbuddy/internal/repository"
)

type TransactionService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewTransactionService(store *repository.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// Deposit records a deposit transaction and credits the balance. Both writes
// run in a single database transaction: either the new row and the new
// balance are both visible, or neither is.
func (s *TransactionService) Deposit(accountID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	s.logger.Info("Processing deposit", "account_id", accountID, "amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	var transaction *domain.Transaction
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		var err error
		transaction, err = tx.Transaction().CreateTransaction(accountID, domain.TypeDeposit, amount)
		if err != nil {
			return err
		}
		return tx.Account().AdjustBalance(accountID, amount)
	})
	if err != nil {
		s.logger.Error("Deposit failed", "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("Deposit completed", "transaction_id", transaction.ID, "account_id", accountID)
	return transaction, nil
}

// Withdraw records a withdrawal and debits the balance. The insufficient
// funds check runs against the balance read inside the same database
// transaction, so a rejected withdrawal leaves no partial write behind.
func (s *TransactionService) Withdraw(accountID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	s.logger.Info("Processing withdrawal", "account_id", accountID, "amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	var transaction *domain.Transaction
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := tx.Account().GetAccount(accountID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(account.Balance) {
			return errors.ErrInsufficientFunds
		}

		transaction, err = tx.Transaction().CreateTransaction(accountID, domain.TypeWithdraw, amount.Neg())
		if err != nil {
			return err
		}
		return tx.Account().AdjustBalance(accountID, amount.Neg())
	})
	if err != nil {
		s.logger.Warn("Withdrawal failed", "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("Withdrawal completed", "transaction_id", transaction.ID, "account_id", accountID)
	return transaction, nil
}

func (s *TransactionService) AllTransactions() ([]*domain.LedgerEntry, error) {
	return s.store.Transaction().ListAllTransactions()
}

func (s *TransactionService) AccountTransactions(accountID int64) ([]*domain.Transaction, error) {
	return s.store.Transaction().ListAccountTransactions(accountID)
}
