package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order aggregates its OrderAsset lines: Price and Quantity always equal the
// sums over the lines.
type Order struct {
	ID        int64           `json:"id"`
	Status    OrderStatus     `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	WalletID  int64           `json:"walletId"`
	Assets    []OrderAsset    `json:"assets,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OrderAsset is one line of an order, priced at execution time.
type OrderAsset struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"orderId"`
	AssetID  int64           `json:"assetId"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
