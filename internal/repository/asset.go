package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/investfolio/backend/internal/models"
)

type AssetRepo struct {
	db DBTX
}

func NewAssetRepo(db DBTX) *AssetRepo {
	return &AssetRepo{db: db}
}

// WithTx returns a copy of the repo bound to the given transaction so asset
// resolution inside a settlement sees the transactional snapshot.
func (r *AssetRepo) WithTx(tx DBTX) *AssetRepo {
	return &AssetRepo{db: tx}
}

// sortableAssetColumns guards the orderBy input; anything else falls back to id.
var sortableAssetColumns = map[string]string{
	"id":     "id",
	"ticker": "ticker",
	"date":   "date",
	"price":  "price",
	"volume": "volume",
}

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO assets
		 (ticker, date, price, volume, daily_variation, bbi, rsi, scom, sven,
		  asset_name, type, benchmark, pl, macdim, macdis, macdh,
		  bbs, bbl, bbm, rsicom, rsivem)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 RETURNING *`,
		a.Ticker, a.Date, a.Price, a.Volume, a.DailyVariation, a.BBI, a.RSI, a.SCom, a.SVen,
		a.AssetName, a.Type, a.Benchmark, a.PL, a.MACDIM, a.MACDIS, a.MACDH,
		a.BBS, a.BBL, a.BBM, a.RSICom, a.RSIVem,
	)
	return scanAsset(row)
}

// GetAll lists snapshots, optionally ordered by a whitelisted column.
func (r *AssetRepo) GetAll(ctx context.Context, orderBy, direction string) ([]models.Asset, error) {
	col, ok := sortableAssetColumns[orderBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT * FROM assets ORDER BY %s %s`, col, dir))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectAssets(rows)
}

func (r *AssetRepo) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM assets WHERE id = $1`, id)
	return scanAsset(row)
}

// GetLatestByTicker resolves a ticker to its most recent price snapshot.
func (r *AssetRepo) GetLatestByTicker(ctx context.Context, ticker string) (*models.Asset, error) {
	row := r.db.QueryRow(ctx,
		`SELECT * FROM assets WHERE ticker = $1 ORDER BY date DESC LIMIT 1`,
		ticker,
	)
	return scanAsset(row)
}

func (r *AssetRepo) Update(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE assets SET
		 ticker = $2, date = $3, price = $4, volume = $5, daily_variation = $6,
		 bbi = $7, rsi = $8, scom = $9, sven = $10, asset_name = $11, type = $12,
		 benchmark = $13, pl = $14, macdim = $15, macdis = $16, macdh = $17,
		 bbs = $18, bbl = $19, bbm = $20, rsicom = $21, rsivem = $22
		 WHERE id = $1 RETURNING *`,
		a.ID, a.Ticker, a.Date, a.Price, a.Volume, a.DailyVariation,
		a.BBI, a.RSI, a.SCom, a.SVen, a.AssetName, a.Type,
		a.Benchmark, a.PL, a.MACDIM, a.MACDIS, a.MACDH,
		a.BBS, a.BBL, a.BBM, a.RSICom, a.RSIVem,
	)
	return scanAsset(row)
}

func (r *AssetRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAsset(row scannable) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(
		&a.ID, &a.Ticker, &a.Date, &a.Price, &a.Volume, &a.DailyVariation,
		&a.BBI, &a.RSI, &a.SCom, &a.SVen, &a.AssetName, &a.Type,
		&a.Benchmark, &a.PL, &a.MACDIM, &a.MACDIS, &a.MACDH,
		&a.BBS, &a.BBL, &a.BBM, &a.RSICom, &a.RSIVem, &a.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func collectAssets(rows rowsIter) ([]models.Asset, error) {
	out := []models.Asset{}
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.Ticker, &a.Date, &a.Price, &a.Volume, &a.DailyVariation,
			&a.BBI, &a.RSI, &a.SCom, &a.SVen, &a.AssetName, &a.Type,
			&a.Benchmark, &a.PL, &a.MACDIM, &a.MACDIS, &a.MACDH,
			&a.BBS, &a.BBL, &a.BBM, &a.RSICom, &a.RSIVem, &a.CreatedAt,
		); err != nil {
			return nil, translate(err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
