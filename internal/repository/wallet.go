package repository

import (
	"context"

	"github.com/investfolio/backend/internal/models"
	"github.com/shopspring/decimal"
)

type WalletRepo struct {
	db DBTX
}

func NewWalletRepo(db DBTX) *WalletRepo {
	return &WalletRepo{db: db}
}

func (r *WalletRepo) WithTx(tx DBTX) *WalletRepo {
	return &WalletRepo{db: tx}
}

func (r *WalletRepo) Create(ctx context.Context, w *models.Wallet) (*models.Wallet, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO wallets (investor_id, total_invested, active)
		 VALUES ($1, $2, $3) RETURNING *`,
		w.InvestorID, w.TotalInvested, w.Active,
	)
	return scanWallet(row)
}

func (r *WalletRepo) GetAll(ctx context.Context) ([]models.Wallet, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM wallets ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectWallets(rows)
}

func (r *WalletRepo) GetByID(ctx context.Context, id int64) (*models.Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM wallets WHERE id = $1`, id)
	return scanWallet(row)
}

// GetForUpdate loads a wallet with a row lock, serializing concurrent
// settlements against the same wallet. Must run inside a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, id int64) (*models.Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM wallets WHERE id = $1 FOR UPDATE`, id)
	return scanWallet(row)
}

// IncrementInvested adds delta to total_invested. The previous balance is
// never reset; settlement only ever applies deltas.
func (r *WalletRepo) IncrementInvested(ctx context.Context, id int64, delta decimal.Decimal) (*models.Wallet, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE wallets SET total_invested = total_invested + $2
		 WHERE id = $1 RETURNING *`,
		id, delta,
	)
	return scanWallet(row)
}

func (r *WalletRepo) SetActive(ctx context.Context, id int64, active bool) (*models.Wallet, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE wallets SET active = $2 WHERE id = $1 RETURNING *`,
		id, active,
	)
	return scanWallet(row)
}

func (r *WalletRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWallet(row scannable) (*models.Wallet, error) {
	var w models.Wallet
	err := row.Scan(&w.ID, &w.InvestorID, &w.TotalInvested, &w.Active, &w.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func collectWallets(rows rowsIter) ([]models.Wallet, error) {
	out := []models.Wallet{}
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.InvestorID, &w.TotalInvested, &w.Active, &w.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
