package repositories

import (
	"context"
	"errors"

	"carteira/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type StockRepository interface {
	GetAll(ctx context.Context) ([]models.Stock, error)
	GetByID(ctx context.Context, id int) (*models.Stock, error)
	GetByTicker(ctx context.Context, ticker string) (*models.Stock, error)
	Create(ctx context.Context, s *models.Stock) error
	Update(ctx context.Context, s *models.Stock) error
	UpdatePrice(ctx context.Context, id int, price decimal.Decimal) error
}

type stockRepo struct {
	db *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) GetAll(ctx context.Context) ([]models.Stock, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, ticker, price, updated_at FROM stocks ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []models.Stock
	for rows.Next() {
		var s models.Stock
		if err := rows.Scan(&s.ID, &s.Ticker, &s.Price, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

func (r *stockRepo) GetByID(ctx context.Context, id int) (*models.Stock, error) {
	var s models.Stock
	err := r.db.QueryRow(ctx,
		`SELECT id, ticker, price, updated_at FROM stocks WHERE id = $1`, id).
		Scan(&s.ID, &s.Ticker, &s.Price, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) GetByTicker(ctx context.Context, ticker string) (*models.Stock, error) {
	var s models.Stock
	err := r.db.QueryRow(ctx,
		`SELECT id, ticker, price, updated_at FROM stocks WHERE ticker = $1`, ticker).
		Scan(&s.ID, &s.Ticker, &s.Price, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) Create(ctx context.Context, s *models.Stock) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO stocks (ticker, price, updated_at) VALUES ($1, $2, NOW())
		RETURNING id, updated_at`,
		s.Ticker, s.Price).Scan(&s.ID, &s.UpdatedAt)
}

func (r *stockRepo) Update(ctx context.Context, s *models.Stock) error {
	_, err := r.db.Exec(ctx,
		`UPDATE stocks SET ticker = $2, price = $3, updated_at = NOW() WHERE id = $1`,
		s.ID, s.Ticker, s.Price)
	return err
}

func (r *stockRepo) UpdatePrice(ctx context.Context, id int, price decimal.Decimal) error {
	_, err := r.db.Exec(ctx,
		`UPDATE stocks SET price = $2, updated_at = NOW() WHERE id = $1`, id, price)
	return err
}
