package services

import (
	"context"
	"fmt"

	"carteira/src/models"
	"carteira/src/repositories"

	"github.com/jackc/pgx/v5"
)

// ErrHoldingDiverged signals that a reversal expected a holding that is
// not there. The ledger and the carteira no longer agree; the caller
// must abort the surrounding transaction.
var ErrHoldingDiverged = fmt.Errorf("carteira diverged from the ledger")

// PortfolioService keeps each (user, stock) holding consistent with the
// net effect of the user's movements. Apply and Reverse always run
// inside the same storage transaction as the movement write that
// triggered them.
type PortfolioService struct {
	Holdings repositories.HoldingRepository
}

func NewPortfolioService(holdings repositories.HoldingRepository) *PortfolioService {
	return &PortfolioService{Holdings: holdings}
}

// Apply folds a freshly written movement into the owner's holding. The
// first buy on a stock opens the position; a sell that brings the
// quantity to zero closes it and removes the row.
func (s *PortfolioService) Apply(ctx context.Context, tx pgx.Tx, m *models.Movement) error {
	holding, err := s.Holdings.GetByUserAndStock(ctx, m.UserID, m.StockID, tx)
	if err != nil {
		return err
	}

	if holding == nil {
		if m.Kind != models.MovementBuy {
			// Sell validation happens before the write; reaching this
			// point means it was skipped.
			return fmt.Errorf("sell of stock %d without a holding: %w", m.StockID, ErrHoldingDiverged)
		}
		holding = models.NewHolding(m.UserID, m.StockID, m.TotalValue, m.Quantity)
		return s.Holdings.Upsert(ctx, holding, tx)
	}

	switch m.Kind {
	case models.MovementBuy:
		holding.ApplyBuy(m.TotalValue, m.Quantity)
	case models.MovementSell:
		holding.ApplySell(m.Quantity)
		if holding.Quantity == 0 {
			return s.Holdings.Delete(ctx, holding.ID, tx)
		}
	}
	return s.Holdings.Upsert(ctx, holding, tx)
}

// Reverse undoes exactly what Apply did for the movement's recorded
// values. It runs before an edit takes effect and after a delete. Sells
// are reversed from their own avg_sell_price snapshot, so the restored
// cost basis is the one that was removed at sell time.
func (s *PortfolioService) Reverse(ctx context.Context, tx pgx.Tx, m *models.Movement) error {
	holding, err := s.Holdings.GetByUserAndStock(ctx, m.UserID, m.StockID, tx)
	if err != nil {
		return err
	}

	if holding == nil {
		if m.Kind == models.MovementSell {
			// The sell had closed the position; reopen it from the snapshot.
			holding = &models.Holding{UserID: m.UserID, StockID: m.StockID}
			holding.ReverseSell(m.AvgSellPrice, m.Quantity)
			return s.Holdings.Upsert(ctx, holding, tx)
		}
		return fmt.Errorf("reversal of buy movement %d found no holding: %w", m.ID, ErrHoldingDiverged)
	}

	switch m.Kind {
	case models.MovementBuy:
		holding.ReverseBuy(m.TotalValue, m.Quantity)
		if holding.Quantity < 0 {
			return fmt.Errorf("reversal of buy movement %d drove quantity negative: %w", m.ID, ErrHoldingDiverged)
		}
		if holding.Quantity == 0 {
			return s.Holdings.Delete(ctx, holding.ID, tx)
		}
	case models.MovementSell:
		holding.ReverseSell(m.AvgSellPrice, m.Quantity)
	}
	return s.Holdings.Upsert(ctx, holding, tx)
}
