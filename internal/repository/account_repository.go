package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"bankbuddy/internal/domain"
	"bankbuddy/internal/errors"
)

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(name string, balance decimal.Decimal) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (name, balance, created_at)
		VALUES (?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := r.db.Exec(query, name, balance.String(), now)
	if err != nil {
		r.logger.Error("Failed to create account", "name", name, "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to create account").WithDetails(err.Error())
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to get new account id").WithDetails(err.Error())
	}

	r.logger.Info("Account created successfully", "account_id", id, "name", name)
	return &domain.Account{
		ID:        id,
		Name:      name,
		Balance:   balance,
		CreatedAt: now,
	}, nil
}

func (r *accountRepository) GetAccount(id int64) (*domain.Account, error) {
	query := `
		SELECT id, name, balance, created_at
		FROM accounts WHERE id = ?
	`

	var account domain.Account
	var balanceStr string

	err := r.db.QueryRow(query, id).Scan(
		&account.ID,
		&account.Name,
		&balanceStr,
		&account.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Account not found", "account_id", id)
			return nil, errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to get account", "account_id", id, "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to get account").WithDetails(err.Error())
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		r.logger.Error("Failed to parse balance", "account_id", id, "balance_str", balanceStr, "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to parse balance").WithDetails(err.Error())
	}

	account.Balance = balance
	return &account, nil
}

func (r *accountRepository) ListAccounts() ([]*domain.Account, error) {
	query := `
		SELECT id, name, balance, created_at
		FROM accounts ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to list accounts").WithDetails(err.Error())
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		var balanceStr string

		if err := rows.Scan(&account.ID, &account.Name, &balanceStr, &account.CreatedAt); err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to scan account").WithDetails(err.Error())
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to parse balance").WithDetails(err.Error())
		}
		account.Balance = balance

		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to read accounts").WithDetails(err.Error())
	}

	return accounts, nil
}

// RenameAccount updates the name field only. A missing id is a no-op, zero
// rows affected; callers that need existence errors check GetAccount first.
func (r *accountRepository) RenameAccount(id int64, name string) error {
	query := `UPDATE accounts SET name = ? WHERE id = ?`

	_, err := r.db.Exec(query, name, id)
	if err != nil {
		r.logger.Error("Failed to rename account", "account_id", id, "error", err)
		return errors.NewAppError(errors.StorageFailure, "failed to rename account").WithDetails(err.Error())
	}

	r.logger.Info("Account renamed", "account_id", id, "name", name)
	return nil
}

// AdjustBalance applies balance = balance + delta. The read and write pair is
// only atomic with respect to other writes when run inside WithTransaction,
// which is how every balance-changing operation invokes it.
func (r *accountRepository) AdjustBalance(id int64, delta decimal.Decimal) error {
	var balanceStr string
	err := r.db.QueryRow(`SELECT balance FROM accounts WHERE id = ?`, id).Scan(&balanceStr)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("No account found to adjust", "account_id", id)
			return errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to read balance", "account_id", id, "error", err)
		return errors.NewAppError(errors.StorageFailure, "failed to read balance").WithDetails(err.Error())
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return errors.NewAppError(errors.StorageFailure, "failed to parse balance").WithDetails(err.Error())
	}

	newBalance := balance.Add(delta)

	result, err := r.db.Exec(`UPDATE accounts SET balance = ? WHERE id = ?`, newBalance.String(), id)
	if err != nil {
		r.logger.Error("Failed to adjust balance", "account_id", id, "error", err)
		return errors.NewAppError(errors.StorageFailure, "failed to adjust balance").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.StorageFailure, "failed to get rows affected").WithDetails(err.Error())
	}
	if rowsAffected == 0 {
		return errors.ErrAccountNotFound
	}

	r.logger.Info("Account balance adjusted", "account_id", id, "delta", delta, "new_balance", newBalance)
	return nil
}
