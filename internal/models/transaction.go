package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionRecord is a cash movement against a wallet, independent of
// order settlement.
type TransactionRecord struct {
	ID          int64           `json:"id"`
	WalletID    int64           `json:"walletId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExecutedAt  time.Time       `json:"executedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}
