package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("asset quantity cannot be negative")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrNoLines         = errors.New("at least one asset line is required")
)

// LineInput is one requested (ticker, quantity) pair.
type LineInput struct {
	Ticker   string `json:"ticker"`
	Quantity int64  `json:"quantity"`
}

// Line is a resolved input: the latest snapshot's asset id and unit price,
// with the exact line total.
type Line struct {
	AssetID   int64
	Ticker    string
	UnitPrice decimal.Decimal
	Quantity  int64
	LineTotal decimal.Decimal
}

// Summary aggregates the resolved lines.
type Summary struct {
	TotalPrice    decimal.Decimal
	TotalQuantity int64
}

// AssetResolver resolves a ticker to its most recent price snapshot.
// *repository.AssetRepo satisfies it, bound to either the pool or a
// transaction.
type AssetResolver interface {
	GetLatestByTicker(ctx context.Context, ticker string) (*models.Asset, error)
}

// Calculate prices the requested lines against the current snapshots. It is
// pure: no writes, no state. Every quantity is validated before the first
// lookup, so a bad line never leaves partially resolved work behind. Each
// line resolves independently against the latest snapshot for its ticker.
func Calculate(ctx context.Context, assets AssetResolver, inputs []LineInput) ([]Line, Summary, error) {
	if len(inputs) == 0 {
		return nil, Summary{}, ErrNoLines
	}

	for _, in := range inputs {
		if in.Quantity < 0 {
			return nil, Summary{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, in.Ticker)
		}
	}

	lines := make([]Line, 0, len(inputs))
	sum := Summary{TotalPrice: decimal.Zero}

	for _, in := range inputs {
		asset, err := assets.GetLatestByTicker(ctx, in.Ticker)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, Summary{}, fmt.Errorf("%w: %s", ErrAssetNotFound, in.Ticker)
			}
			return nil, Summary{}, fmt.Errorf("resolve %s: %w", in.Ticker, err)
		}

		lineTotal := asset.Price.Mul(decimal.NewFromInt(in.Quantity))
		lines = append(lines, Line{
			AssetID:   asset.ID,
			Ticker:    asset.Ticker,
			UnitPrice: asset.Price,
			Quantity:  in.Quantity,
			LineTotal: lineTotal,
		})
		sum.TotalPrice = sum.TotalPrice.Add(lineTotal)
		sum.TotalQuantity += in.Quantity
	}

	return lines, sum, nil
}
