package repository

import (
	"context"

	"github.com/investfolio/backend/internal/models"
	"github.com/shopspring/decimal"
)

type OrderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) WithTx(tx DBTX) *OrderRepo {
	return &OrderRepo{db: tx}
}

// Create inserts the order header and its lines. Callers settle inside a
// transaction, so the header and lines commit or roll back together.
func (r *OrderRepo) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO orders (status, price, quantity, wallet_id)
		 VALUES ($1, $2, $3, $4) RETURNING *`,
		o.Status, o.Price, o.Quantity, o.WalletID,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	created.Assets, err = r.insertLines(ctx, created.ID, o.Assets)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *OrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM orders ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	o.Assets, err = r.GetLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate locks the order row for the duration of the transaction.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, id)
	return scanOrder(row)
}

func (r *OrderRepo) GetLines(ctx context.Context, orderID int64) ([]models.OrderAsset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM order_assets WHERE order_id = $1 ORDER BY id ASC`,
		orderID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []models.OrderAsset{}
	for rows.Next() {
		var l models.OrderAsset
		if err := rows.Scan(&l.ID, &l.OrderID, &l.AssetID, &l.Quantity, &l.Price); err != nil {
			return nil, translate(err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *`,
		id, status,
	)
	return scanOrder(row)
}

// ReplaceLines drops every existing line and installs the new set together
// with the recomputed aggregates.
func (r *OrderRepo) ReplaceLines(ctx context.Context, id int64, status models.OrderStatus, price decimal.Decimal, quantity int64, lines []models.OrderAsset) (*models.Order, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM order_assets WHERE order_id = $1`, id); err != nil {
		return nil, translate(err)
	}

	row := r.db.QueryRow(ctx,
		`UPDATE orders SET status = $2, price = $3, quantity = $4, updated_at = NOW()
		 WHERE id = $1 RETURNING *`,
		id, status, price, quantity,
	)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	o.Assets, err = r.insertLines(ctx, id, lines)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepo) insertLines(ctx context.Context, orderID int64, lines []models.OrderAsset) ([]models.OrderAsset, error) {
	out := make([]models.OrderAsset, 0, len(lines))
	for _, l := range lines {
		row := r.db.QueryRow(ctx,
			`INSERT INTO order_assets (order_id, asset_id, quantity, price)
			 VALUES ($1, $2, $3, $4) RETURNING *`,
			orderID, l.AssetID, l.Quantity, l.Price,
		)
		var inserted models.OrderAsset
		if err := row.Scan(&inserted.ID, &inserted.OrderID, &inserted.AssetID, &inserted.Quantity, &inserted.Price); err != nil {
			return nil, translate(err)
		}
		out = append(out, inserted)
	}
	return out, nil
}

func scanOrder(row scannable) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.Status, &o.Price, &o.Quantity, &o.WalletID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func collectOrders(rows rowsIter) ([]models.Order, error) {
	out := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.Price, &o.Quantity, &o.WalletID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
