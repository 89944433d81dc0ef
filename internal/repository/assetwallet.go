package repository

import (
	"context"
	"time"

	"github.com/investfolio/backend/internal/models"
)

type AssetWalletRepo struct {
	db DBTX
}

func NewAssetWalletRepo(db DBTX) *AssetWalletRepo {
	return &AssetWalletRepo{db: db}
}

func (r *AssetWalletRepo) WithTx(tx DBTX) *AssetWalletRepo {
	return &AssetWalletRepo{db: tx}
}

func (r *AssetWalletRepo) GetAll(ctx context.Context) ([]models.AssetWallet, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM asset_wallets ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectAssetWallets(rows)
}

func (r *AssetWalletRepo) GetByID(ctx context.Context, id int64) (*models.AssetWallet, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM asset_wallets WHERE id = $1`, id)
	return scanAssetWallet(row)
}

func (r *AssetWalletRepo) GetByWallet(ctx context.Context, walletID int64) ([]models.AssetWallet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM asset_wallets WHERE wallet_id = $1 ORDER BY id ASC`,
		walletID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectAssetWallets(rows)
}

// UpsertIncrement accumulates quantity for the (asset, wallet) pair: the row
// is created with bought_at when absent, otherwise quantity is incremented,
// never overwritten.
func (r *AssetWalletRepo) UpsertIncrement(ctx context.Context, assetID, walletID, quantity int64, boughtAt time.Time) (*models.AssetWallet, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO asset_wallets (asset_id, wallet_id, quantity, bought_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (asset_id, wallet_id)
		 DO UPDATE SET quantity = asset_wallets.quantity + EXCLUDED.quantity
		 RETURNING *`,
		assetID, walletID, quantity, boughtAt,
	)
	return scanAssetWallet(row)
}

func (r *AssetWalletRepo) UpdateQuantity(ctx context.Context, id, quantity int64) (*models.AssetWallet, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE asset_wallets SET quantity = $2 WHERE id = $1 RETURNING *`,
		id, quantity,
	)
	return scanAssetWallet(row)
}

func (r *AssetWalletRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM asset_wallets WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAssetWallet(row scannable) (*models.AssetWallet, error) {
	var aw models.AssetWallet
	err := row.Scan(&aw.ID, &aw.AssetID, &aw.WalletID, &aw.Quantity, &aw.BoughtAt)
	if err != nil {
		return nil, translate(err)
	}
	return &aw, nil
}

func collectAssetWallets(rows rowsIter) ([]models.AssetWallet, error) {
	out := []models.AssetWallet{}
	for rows.Next() {
		var aw models.AssetWallet
		if err := rows.Scan(&aw.ID, &aw.AssetID, &aw.WalletID, &aw.Quantity, &aw.BoughtAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, aw)
	}
	return out, rows.Err()
}
