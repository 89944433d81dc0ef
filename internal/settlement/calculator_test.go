package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/repository"
	"github.com/investfolio/backend/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	assets map[string]*models.Asset
	calls  int
}

func (f *fakeResolver) GetLatestByTicker(ctx context.Context, ticker string) (*models.Asset, error) {
	f.calls++
	a, ok := f.assets[ticker]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func snapshot(id int64, ticker, price string) *models.Asset {
	return &models.Asset{
		ID:     id,
		Ticker: ticker,
		Date:   time.Now(),
		Price:  decimal.RequireFromString(price),
	}
}

func TestCalculate_AggregatesExactly(t *testing.T) {
	resolver := &fakeResolver{assets: map[string]*models.Asset{
		"AAPL":  snapshot(1, "AAPL", "150.00"),
		"GOOGL": snapshot(2, "GOOGL", "2000.00"),
	}}

	lines, sum, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "AAPL", Quantity: 10},
		{Ticker: "GOOGL", Quantity: 5},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, int64(1), lines[0].AssetID)
	assert.True(t, lines[0].LineTotal.Equal(decimal.RequireFromString("1500.00")), "line total %s", lines[0].LineTotal)
	assert.True(t, lines[1].LineTotal.Equal(decimal.RequireFromString("10000.00")), "line total %s", lines[1].LineTotal)

	assert.True(t, sum.TotalPrice.Equal(decimal.RequireFromString("11500.00")), "total %s", sum.TotalPrice)
	assert.Equal(t, int64(15), sum.TotalQuantity)
}

func TestCalculate_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 * 3 drifts under binary floats; decimals must not.
	resolver := &fakeResolver{assets: map[string]*models.Asset{
		"PENNY": snapshot(7, "PENNY", "0.1"),
	}}

	_, sum, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "PENNY", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.3", sum.TotalPrice.String())
}

func TestCalculate_RejectsNegativeQuantityBeforeResolving(t *testing.T) {
	resolver := &fakeResolver{assets: map[string]*models.Asset{
		"AAPL": snapshot(1, "AAPL", "150.00"),
	}}

	_, _, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "AAPL", Quantity: 10},
		{Ticker: "AAPL", Quantity: -10},
	})
	require.ErrorIs(t, err, settlement.ErrInvalidQuantity)
	assert.Zero(t, resolver.calls, "no lookup may happen before quantity validation")
}

func TestCalculate_UnknownTicker(t *testing.T) {
	resolver := &fakeResolver{assets: map[string]*models.Asset{}}

	_, _, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "NOPE", Quantity: 1},
	})
	require.ErrorIs(t, err, settlement.ErrAssetNotFound)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestCalculate_EmptyInput(t *testing.T) {
	resolver := &fakeResolver{}
	_, _, err := settlement.Calculate(context.Background(), resolver, nil)
	require.ErrorIs(t, err, settlement.ErrNoLines)
}

func TestCalculate_ZeroQuantityLine(t *testing.T) {
	resolver := &fakeResolver{assets: map[string]*models.Asset{
		"AAPL": snapshot(1, "AAPL", "150.00"),
	}}

	lines, sum, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "AAPL", Quantity: 0},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, sum.TotalPrice.IsZero())
	assert.Equal(t, int64(0), sum.TotalQuantity)
}

func TestCalculate_RepeatedTickerResolvesSameSnapshot(t *testing.T) {
	resolver := &fakeResolver{assets: map[string]*models.Asset{
		"AAPL": snapshot(1, "AAPL", "150.00"),
	}}

	lines, sum, err := settlement.Calculate(context.Background(), resolver, []settlement.LineInput{
		{Ticker: "AAPL", Quantity: 2},
		{Ticker: "AAPL", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].UnitPrice.Equal(lines[1].UnitPrice))
	assert.True(t, sum.TotalPrice.Equal(decimal.RequireFromString("750.00")), "total %s", sum.TotalPrice)
	assert.Equal(t, int64(5), sum.TotalQuantity)
}
