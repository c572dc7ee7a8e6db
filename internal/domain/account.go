package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type AccountRepository interface {
	CreateAccount(name string, balance decimal.Decimal) (*Account, error)
	GetAccount(id int64) (*Account, error)
	ListAccounts() ([]*Account, error)
	RenameAccount(id int64, name string) error
	AdjustBalance(id int64, delta decimal.Decimal) error
}
