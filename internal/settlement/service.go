package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier announces applied settlements. Satisfied by *notifications.Sender.
type Notifier interface {
	Send(msg string)
	Enabled() bool
}

// Service applies settlement results atomically: every read that feeds a
// decision and every write runs on one pgx transaction, so no order, holding
// or balance change is ever partially visible.
type Service struct {
	pool     *pgxpool.Pool
	assets   *repository.AssetRepo
	wallets  *repository.WalletRepo
	holdings *repository.AssetWalletRepo
	orders   *repository.OrderRepo
	notify   Notifier
}

func NewService(pool *pgxpool.Pool, notify Notifier) *Service {
	return &Service{
		pool:     pool,
		assets:   repository.NewAssetRepo(pool),
		wallets:  repository.NewWalletRepo(pool),
		holdings: repository.NewAssetWalletRepo(pool),
		orders:   repository.NewOrderRepo(pool),
		notify:   notify,
	}
}

// CreateOrder resolves the requested lines and persists a CONFIRMED order
// with its lines, then increments the wallet's invested balance by the
// aggregate total. The wallet row is locked before any write.
func (s *Service) CreateOrder(ctx context.Context, walletID int64, inputs []LineInput) (*models.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	wallets := s.wallets.WithTx(tx)
	if _, err := wallets.GetForUpdate(ctx, walletID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrWalletNotFound, walletID)
		}
		return nil, err
	}

	lines, sum, err := Calculate(ctx, s.assets.WithTx(tx), inputs)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.WithTx(tx).Create(ctx, &models.Order{
		Status:   models.OrderConfirmed,
		Price:    sum.TotalPrice,
		Quantity: sum.TotalQuantity,
		WalletID: walletID,
		Assets:   toOrderLines(lines),
	})
	if err != nil {
		return nil, err
	}

	if _, err := wallets.IncrementInvested(ctx, walletID, sum.TotalPrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	s.announce(fmt.Sprintf("order %d confirmed: wallet %d invested %s across %d units",
		order.ID, walletID, sum.TotalPrice.StringFixed(2), sum.TotalQuantity))
	return order, nil
}

// UpdateOrder changes an order's status and, when a new asset set is given,
// recomputes and replaces its lines and aggregates from scratch against the
// current snapshots. The old lines never merge into the new set, and the
// wallet balance is left alone.
func (s *Service) UpdateOrder(ctx context.Context, orderID int64, status *models.OrderStatus, inputs []LineInput) (*models.Order, error) {
	if len(inputs) == 0 {
		if status == nil {
			return s.orders.GetByID(ctx, orderID)
		}
		// The status write and the line read share one transaction so the
		// response never mixes the new status with a concurrent line replace.
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("begin settlement: %w", err)
		}
		defer tx.Rollback(ctx)

		orders := s.orders.WithTx(tx)
		order, err := orders.UpdateStatus(ctx, orderID, *status)
		if err != nil {
			return nil, err
		}
		order.Assets, err = orders.GetLines(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit settlement: %w", err)
		}
		return order, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	orders := s.orders.WithTx(tx)
	existing, err := orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, sum, err := Calculate(ctx, s.assets.WithTx(tx), inputs)
	if err != nil {
		return nil, err
	}

	newStatus := existing.Status
	if status != nil {
		newStatus = *status
	}

	order, err := orders.ReplaceLines(ctx, orderID, newStatus, sum.TotalPrice, sum.TotalQuantity, toOrderLines(lines))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}
	return order, nil
}

// SettleWallet accumulates holdings for a wallet: each resolved line
// increments the (asset, wallet) quantity, creating the holding with
// boughtAt=now when absent, and the wallet's invested balance grows by the
// aggregate total. Quantities are increments, never overwrites.
func (s *Service) SettleWallet(ctx context.Context, walletID int64, inputs []LineInput, active *bool) (*models.Wallet, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	wallets := s.wallets.WithTx(tx)
	wallet, err := wallets.GetForUpdate(ctx, walletID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrWalletNotFound, walletID)
		}
		return nil, err
	}

	var applied string
	if len(inputs) > 0 {
		lines, sum, err := Calculate(ctx, s.assets.WithTx(tx), inputs)
		if err != nil {
			return nil, err
		}

		holdings := s.holdings.WithTx(tx)
		boughtAt := time.Now()
		for _, line := range lines {
			if _, err := holdings.UpsertIncrement(ctx, line.AssetID, walletID, line.Quantity, boughtAt); err != nil {
				return nil, err
			}
		}

		wallet, err = wallets.IncrementInvested(ctx, walletID, sum.TotalPrice)
		if err != nil {
			return nil, err
		}

		applied = fmt.Sprintf("wallet %d settled %d lines: +%s invested (now %s)",
			walletID, len(lines), sum.TotalPrice.StringFixed(2), wallet.TotalInvested.StringFixed(2))
	}

	if active != nil {
		wallet, err = wallets.SetActive(ctx, walletID, *active)
		if err != nil {
			return nil, err
		}
	}

	wallet.Holdings, err = s.holdings.WithTx(tx).GetByWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	if applied != "" {
		s.announce(applied)
	}
	return wallet, nil
}

func (s *Service) announce(msg string) {
	if s.notify == nil || !s.notify.Enabled() {
		return
	}
	go s.notify.Send(msg)
}

func toOrderLines(lines []Line) []models.OrderAsset {
	out := make([]models.OrderAsset, len(lines))
	for i, l := range lines {
		out[i] = models.OrderAsset{AssetID: l.AssetID, Quantity: l.Quantity, Price: l.UnitPrice}
	}
	return out
}
