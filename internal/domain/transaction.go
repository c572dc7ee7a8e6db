package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
)

// Transaction is an append-only audit record. The sign of Amount encodes
// direction: deposits are stored positive, withdrawals negative.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// LedgerEntry is a transaction joined with the name of its account, used by
// the full-history view.
type LedgerEntry struct {
	Transaction
	AccountName string `json:"account_name"`
}

type TransactionRepository interface {
	CreateTransaction(accountID int64, txType TransactionType, amount decimal.Decimal) (*Transaction, error)
	ListAllTransactions() ([]*LedgerEntry, error)
	ListAccountTransactions(accountID int64) ([]*Transaction, error)
}
