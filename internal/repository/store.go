package repository

import (
	"database/sql"
	"log/slog"

	"bankbuddy/internal/domain"
	"bankbuddy/internal/errors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	balance TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL REFERENCES accounts (id),
	type TEXT NOT NULL,
	amount TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store provides a unified interface for all repository operations with
// transaction support. It owns the database handle: Open creates it, Close
// releases it.
type Store struct {
	executor SQLExecutor
	db       *sql.DB // nil for transaction-scoped stores
	logger   *slog.Logger
}

// Open opens or creates the ledger database at path. The schema is applied
// with IF NOT EXISTS, so reopening an existing file leaves its data and
// schema untouched. Foreign keys are enforced on every connection.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_time_format=sqlite")
	if err != nil {
		return nil, errors.NewAppError(errors.StorageFailure, "failed to open database").WithDetails(err.Error())
	}

	// SQLite allows a single writer; one connection also serializes the
	// deposit/withdraw write pairs for any future concurrent caller.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewAppError(errors.StorageFailure, "failed to connect to database").WithDetails(err.Error())
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewAppError(errors.StorageFailure, "failed to apply schema").WithDetails(err.Error())
	}

	logger.Info("ledger database ready", "path", path)

	return &Store{
		executor: db,
		db:       db,
		logger:   logger,
	}, nil
}

// Account returns an AccountRepository using the current executor
func (s *Store) Account() domain.AccountRepository {
	return NewAccountRepository(s.executor, s.logger)
}

// Transaction returns a TransactionRepository using the current executor
func (s *Store) Transaction() domain.TransactionRepository {
	return NewTransactionRepository(s.executor, s.logger)
}

// WithTransaction executes a function within a database transaction
func (s *Store) WithTransaction(fn func(*Store) error) error {
	// Only the root store can begin transactions
	if s.db == nil {
		return errors.NewAppError(errors.StorageFailure, "cannot begin a nested transaction")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewAppError(errors.StorageFailure, "failed to begin transaction").WithDetails(err.Error())
	}

	txStore := &Store{
		executor: tx,
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewAppError(errors.StorageFailure, "failed to commit transaction").WithDetails(err.Error())
	}
	return nil
}

// Close releases the database handle. Safe to call more than once.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return errors.NewAppError(errors.StorageFailure, "failed to close database").WithDetails(err.Error())
	}
	s.logger.Info("ledger database closed")
	return nil
}
