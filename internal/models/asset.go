package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is one dated price snapshot for a ticker. Many rows may share a
// ticker; the row with the latest date is the current price. The indicator
// columns are carried through CRUD untouched.
type Asset struct {
	ID             int64               `json:"id"`
	Ticker         string              `json:"ticker"`
	Date           time.Time           `json:"date"`
	Price          decimal.Decimal     `json:"price"`
	Volume         int64               `json:"volume"`
	DailyVariation decimal.Decimal     `json:"dailyVariation"`
	BBI            decimal.Decimal     `json:"bbi"`
	RSI            *int64              `json:"rsi,omitempty"`
	SCom           decimal.NullDecimal `json:"scom,omitempty"`
	SVen           decimal.Decimal     `json:"sven"`
	AssetName      string              `json:"assetName"`
	Type           string              `json:"type"`
	Benchmark      string              `json:"benchmark"`
	PL             decimal.Decimal     `json:"pl"`
	MACDIM         decimal.Decimal     `json:"macdim"`
	MACDIS         decimal.Decimal     `json:"macdis"`
	MACDH          decimal.Decimal     `json:"macdh"`
	BBS            decimal.Decimal     `json:"bbs"`
	BBL            decimal.Decimal     `json:"bbl"`
	BBM            decimal.Decimal     `json:"bbm"`
	RSICom         decimal.Decimal     `json:"rsicom"`
	RSIVem         decimal.Decimal     `json:"rsivem"`
	CreatedAt      time.Time           `json:"createdAt"`
}
