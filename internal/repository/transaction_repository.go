package repository

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"bankbuddy/internal/domain"
	"bankbuddy/internal/errors"
)

type transactionRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransactionRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransaction appends one immutable row to the transaction log. No
// update or delete counterpart exists anywhere in this package.
func (r *transactionRepository) CreateTransaction(accountID int64, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, type, amount, created_at)
		VALUES (?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := r.db.Exec(query, accountID, string(txType), amount.String(), now)
	if err != nil {
		var sqliteErr *sqlite.Error
		if stderrors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			r.logger.Warn("Transaction references missing account", "account_id", accountID)
			return nil, errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to create transaction",
			"account_id", accountID,
			"type", txType,
			"amount", amount,
			"error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to create transaction").WithDetails(err.Error())
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to get new transaction id").WithDetails(err.Error())
	}

	r.logger.Info("Transaction recorded", "transaction_id", id, "account_id", accountID, "type", txType, "amount", amount)
	return &domain.Transaction{
		ID:        id,
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		CreatedAt: now,
	}, nil
}

// ListAllTransactions returns every transaction joined with its account name,
// newest first. Equal timestamps fall back to insertion order, later rows
// first.
func (r *transactionRepository) ListAllTransactions() ([]*domain.LedgerEntry, error) {
	query := `
		SELECT t.id, t.account_id, t.type, t.amount, t.created_at, COALESCE(a.name, 'Unknown')
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to list transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var txType, amountStr string

		if err := rows.Scan(&entry.ID, &entry.AccountID, &txType, &amountStr, &entry.CreatedAt, &entry.AccountName); err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to scan transaction").WithDetails(err.Error())
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to parse amount").WithDetails(err.Error())
		}
		entry.Type = domain.TransactionType(txType)
		entry.Amount = amount

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to read transactions").WithDetails(err.Error())
	}

	return entries, nil
}

func (r *transactionRepository) ListAccountTransactions(accountID int64) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, type, amount, created_at
		FROM transactions
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		r.logger.Error("Failed to list account transactions", "account_id", accountID, "error", err)
		return nil, errors.NewAppError(errors.StorageFailure, "failed to list account transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var txType, amountStr string

		if err := rows.Scan(&tx.ID, &tx.AccountID, &txType, &amountStr, &tx.CreatedAt); err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to scan transaction").WithDetails(err.Error())
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.StorageFailure, "failed to parse amount").WithDetails(err.Error())
		}
		tx.Type = domain.TransactionType(txType)
		tx.Amount = amount

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to read transactions").WithDetails(err.Error())
	}

	return transactions, nil
}
