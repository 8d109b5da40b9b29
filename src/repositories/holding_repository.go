package repositories

import (
	"context"
	"errors"

	"carteira/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	// GetByUserAndStock returns nil without error when the owner holds
	// no position on the stock. Pass the open transaction during
	// reconciliation so the read observes uncommitted writes.
	GetByUserAndStock(ctx context.Context, userID uuid.UUID, stockID int, tx pgx.Tx) (*models.Holding, error)
	GetByUserWithStock(ctx context.Context, userID uuid.UUID) ([]models.HoldingWithStock, error)
	Upsert(ctx context.Context, h *models.Holding, tx pgx.Tx) error
	Delete(ctx context.Context, id int, tx pgx.Tx) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) q(tx pgx.Tx) querier {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *holdingRepo) GetByUserAndStock(ctx context.Context, userID uuid.UUID, stockID int, tx pgx.Tx) (*models.Holding, error) {
	var h models.Holding
	err := r.q(tx).QueryRow(ctx,
		`SELECT id, user_id, stock_id, invested_value, average_cost, quantity
		FROM holdings WHERE user_id = $1 AND stock_id = $2`, userID, stockID).
		Scan(&h.ID, &h.UserID, &h.StockID, &h.InvestedValue, &h.AverageCost, &h.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) GetByUserWithStock(ctx context.Context, userID uuid.UUID) ([]models.HoldingWithStock, error) {
	rows, err := r.db.Query(ctx,
		`SELECT h.id, h.user_id, h.stock_id, h.invested_value, h.average_cost, h.quantity,
			s.ticker, s.price
		FROM holdings h
		JOIN stocks s ON s.id = h.stock_id
		WHERE h.user_id = $1
		ORDER BY s.ticker`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.HoldingWithStock
	for rows.Next() {
		var h models.HoldingWithStock
		if err := rows.Scan(&h.ID, &h.UserID, &h.StockID, &h.InvestedValue,
			&h.AverageCost, &h.Quantity, &h.Ticker, &h.Price); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) Upsert(ctx context.Context, h *models.Holding, tx pgx.Tx) error {
	return r.q(tx).QueryRow(ctx,
		`INSERT INTO holdings (user_id, stock_id, invested_value, average_cost, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, stock_id) DO UPDATE SET
			invested_value = EXCLUDED.invested_value,
			average_cost = EXCLUDED.average_cost,
			quantity = EXCLUDED.quantity
		RETURNING id`,
		h.UserID, h.StockID, h.InvestedValue, h.AverageCost, h.Quantity).Scan(&h.ID)
}

func (r *holdingRepo) Delete(ctx context.Context, id int, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	return err
}
