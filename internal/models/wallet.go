package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID            int64           `json:"id"`
	InvestorID    int64           `json:"investorId"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	Holdings      []AssetWallet   `json:"holdings,omitempty"`
}

// AssetWallet is the accumulated position of one asset inside one wallet.
// Unique per (assetId, walletId); quantity only ever grows by increments.
type AssetWallet struct {
	ID       int64     `json:"id"`
	AssetID  int64     `json:"assetId"`
	WalletID int64     `json:"walletId"`
	Quantity int64     `json:"quantity"`
	BoughtAt time.Time `json:"boughtAt"`
}
