package repositories

import (
	"context"
	"errors"

	"carteira/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovementRepository interface {
	GetByID(ctx context.Context, id int, userID uuid.UUID) (*models.Movement, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.MovementWithTicker, error)
	GetSellsByYear(ctx context.Context, userID uuid.UUID, year int) ([]models.Movement, error)
	Create(ctx context.Context, m *models.Movement, tx pgx.Tx) error
	Update(ctx context.Context, m *models.Movement, tx pgx.Tx) error
	Delete(ctx context.Context, id int, tx pgx.Tx) error
}

type movementRepo struct {
	db *pgxpool.Pool
}

func NewMovementRepository(db *pgxpool.Pool) MovementRepository {
	return &movementRepo{db: db}
}

// q lets callers run the statement inside an open transaction.
func (r *movementRepo) q(tx pgx.Tx) querier {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *movementRepo) GetByID(ctx context.Context, id int, userID uuid.UUID) (*models.Movement, error) {
	var m models.Movement
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, stock_id, date, kind, unit_price, quantity, total_value, avg_sell_price, created_at
		FROM movements WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&m.ID, &m.UserID, &m.StockID, &m.Date, &m.Kind, &m.UnitPrice,
			&m.Quantity, &m.TotalValue, &m.AvgSellPrice, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movementRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.MovementWithTicker, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.user_id, m.stock_id, m.date, m.kind, m.unit_price, m.quantity,
			m.total_value, m.avg_sell_price, m.created_at, s.ticker
		FROM movements m
		JOIN stocks s ON s.id = m.stock_id
		WHERE m.user_id = $1
		ORDER BY m.date DESC, m.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []models.MovementWithTicker
	for rows.Next() {
		var m models.MovementWithTicker
		if err := rows.Scan(&m.ID, &m.UserID, &m.StockID, &m.Date, &m.Kind,
			&m.UnitPrice, &m.Quantity, &m.TotalValue, &m.AvgSellPrice,
			&m.CreatedAt, &m.Ticker); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *movementRepo) GetSellsByYear(ctx context.Context, userID uuid.UUID, year int) ([]models.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, stock_id, date, kind, unit_price, quantity, total_value, avg_sell_price, created_at
		FROM movements
		WHERE user_id = $1 AND kind = 'V' AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date`, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.UserID, &m.StockID, &m.Date, &m.Kind,
			&m.UnitPrice, &m.Quantity, &m.TotalValue, &m.AvgSellPrice, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *movementRepo) Create(ctx context.Context, m *models.Movement, tx pgx.Tx) error {
	return r.q(tx).QueryRow(ctx,
		`INSERT INTO movements (user_id, stock_id, date, kind, unit_price, quantity, total_value, avg_sell_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		m.UserID, m.StockID, m.Date, m.Kind, m.UnitPrice, m.Quantity,
		m.TotalValue, m.AvgSellPrice).Scan(&m.ID, &m.CreatedAt)
}

func (r *movementRepo) Update(ctx context.Context, m *models.Movement, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx,
		`UPDATE movements SET stock_id = $2, date = $3, kind = $4, unit_price = $5,
			quantity = $6, total_value = $7, avg_sell_price = $8
		WHERE id = $1`,
		m.ID, m.StockID, m.Date, m.Kind, m.UnitPrice, m.Quantity,
		m.TotalValue, m.AvgSellPrice)
	return err
}

func (r *movementRepo) Delete(ctx context.Context, id int, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	return err
}
