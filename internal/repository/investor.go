package repository

import (
	"context"

	"github.com/investfolio/backend/internal/models"
)

type InvestorRepo struct {
	db DBTX
}

func NewInvestorRepo(db DBTX) *InvestorRepo {
	return &InvestorRepo{db: db}
}

func (r *InvestorRepo) Create(ctx context.Context, inv *models.Investor) (*models.Investor, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO investors (email, name, password, tax_id)
		 VALUES ($1, $2, $3, $4) RETURNING *`,
		inv.Email, inv.Name, inv.Password, inv.TaxID,
	)
	return scanInvestor(row)
}

func (r *InvestorRepo) GetAll(ctx context.Context) ([]models.Investor, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM investors ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectInvestors(rows)
}

func (r *InvestorRepo) GetByID(ctx context.Context, id int64) (*models.Investor, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM investors WHERE id = $1`, id)
	return scanInvestor(row)
}

func (r *InvestorRepo) Update(ctx context.Context, inv *models.Investor) (*models.Investor, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE investors SET email = $2, name = $3, password = $4, tax_id = $5
		 WHERE id = $1 RETURNING *`,
		inv.ID, inv.Email, inv.Name, inv.Password, inv.TaxID,
	)
	return scanInvestor(row)
}

func (r *InvestorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM investors WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvestor(row scannable) (*models.Investor, error) {
	var inv models.Investor
	err := row.Scan(&inv.ID, &inv.Email, &inv.Name, &inv.Password, &inv.TaxID, &inv.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func collectInvestors(rows rowsIter) ([]models.Investor, error) {
	out := []models.Investor{}
	for rows.Next() {
		var inv models.Investor
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Name, &inv.Password, &inv.TaxID, &inv.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
