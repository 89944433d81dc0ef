package repository

import (
	"context"
	"time"

	"github.com/investfolio/backend/internal/models"
)

type TransactionRepo struct {
	db DBTX
}

func NewTransactionRepo(db DBTX) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Create(ctx context.Context, t *models.TransactionRecord) (*models.TransactionRecord, error) {
	executedAt := t.ExecutedAt
	if executedAt.IsZero() {
		executedAt = time.Now()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO transaction_records (wallet_id, type, amount, description, executed_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		t.WalletID, t.Type, t.Amount, t.Description, executedAt,
	)
	return scanTransaction(row)
}

func (r *TransactionRepo) GetAll(ctx context.Context) ([]models.TransactionRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM transaction_records ORDER BY executed_at DESC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*models.TransactionRecord, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM transaction_records WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *TransactionRepo) Update(ctx context.Context, t *models.TransactionRecord) (*models.TransactionRecord, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE transaction_records
		 SET wallet_id = $2, type = $3, amount = $4, description = $5, executed_at = $6
		 WHERE id = $1 RETURNING *`,
		t.ID, t.WalletID, t.Type, t.Amount, t.Description, t.ExecutedAt,
	)
	return scanTransaction(row)
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transaction_records WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row scannable) (*models.TransactionRecord, error) {
	var t models.TransactionRecord
	err := row.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Description, &t.ExecutedAt, &t.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func collectTransactions(rows rowsIter) ([]models.TransactionRecord, error) {
	out := []models.TransactionRecord{}
	for rows.Next() {
		var t models.TransactionRecord
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Description, &t.ExecutedAt, &t.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
