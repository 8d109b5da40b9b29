package controllers_test

import (
	"context"
	"errors"
	"fmt"

	"carteira/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubTx satisfies pgx.Tx for controllers whose repositories never touch
// the connection. Commit and Rollback carry the transactional behavior:
// rolling back an uncommitted transaction restores the fake repositories
// to their state at Begin, so a failed write leaves no partial state.
type stubTx struct {
	committed  bool
	rolledBack bool
	restore    func()
}

func (t *stubTx) Begin(context.Context) (pgx.Tx, error) { return nil, errors.New("not implemented") }

func (t *stubTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
		if t.restore != nil {
			t.restore()
		}
	}
	return nil
}

func (t *stubTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}

func (t *stubTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *stubTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}

func (t *stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (t *stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *stubTx) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (t *stubTx) Conn() *pgx.Conn { return nil }

// stubDB hands out stubTx transactions and remembers the last one so
// tests can check whether it was committed. Begin snapshots the fake
// repositories; an uncommitted transaction rolls them back to that
// snapshot.
type stubDB struct {
	movements *memoryMovementRepo
	holdings  *memoryHoldingRepo
	lastTx    *stubTx
}

func (db *stubDB) Begin(context.Context) (pgx.Tx, error) {
	movements := db.movements.snapshot()
	holdings := db.holdings.snapshot()
	db.lastTx = &stubTx{restore: func() {
		db.movements.restoreSnapshot(movements)
		db.holdings.restoreSnapshot(holdings)
	}}
	return db.lastTx, nil
}

type memoryStockRepo struct {
	stocks []models.Stock
}

func (r *memoryStockRepo) GetAll(context.Context) ([]models.Stock, error) {
	return r.stocks, nil
}

func (r *memoryStockRepo) GetByID(_ context.Context, id int) (*models.Stock, error) {
	for _, s := range r.stocks {
		if s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryStockRepo) GetByTicker(_ context.Context, ticker string) (*models.Stock, error) {
	for _, s := range r.stocks {
		if s.Ticker == ticker {
			copied := s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryStockRepo) Create(_ context.Context, s *models.Stock) error {
	s.ID = len(r.stocks) + 1
	r.stocks = append(r.stocks, *s)
	return nil
}

func (r *memoryStockRepo) Update(_ context.Context, s *models.Stock) error {
	for i := range r.stocks {
		if r.stocks[i].ID == s.ID {
			r.stocks[i] = *s
		}
	}
	return nil
}

func (r *memoryStockRepo) UpdatePrice(_ context.Context, id int, price decimal.Decimal) error {
	for i := range r.stocks {
		if r.stocks[i].ID == id {
			r.stocks[i].Price = price
		}
	}
	return nil
}

type memoryMovementRepo struct {
	nextID    int
	movements map[int]*models.Movement
	tickers   map[int]string
}

func newMemoryMovementRepo() *memoryMovementRepo {
	return &memoryMovementRepo{nextID: 1, movements: map[int]*models.Movement{}, tickers: map[int]string{}}
}

func (r *memoryMovementRepo) GetByID(_ context.Context, id int, userID uuid.UUID) (*models.Movement, error) {
	m, ok := r.movements[id]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *memoryMovementRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]models.MovementWithTicker, error) {
	var result []models.MovementWithTicker
	for _, m := range r.movements {
		if m.UserID == userID {
			result = append(result, models.MovementWithTicker{Movement: *m, Ticker: r.tickers[m.StockID]})
		}
	}
	return result, nil
}

func (r *memoryMovementRepo) GetSellsByYear(_ context.Context, userID uuid.UUID, year int) ([]models.Movement, error) {
	var result []models.Movement
	for _, m := range r.movements {
		if m.UserID == userID && m.Kind == models.MovementSell && m.Date.Year() == year {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *memoryMovementRepo) Create(_ context.Context, m *models.Movement, _ pgx.Tx) error {
	m.ID = r.nextID
	r.nextID++
	copied := *m
	r.movements[m.ID] = &copied
	return nil
}

func (r *memoryMovementRepo) Update(_ context.Context, m *models.Movement, _ pgx.Tx) error {
	copied := *m
	r.movements[m.ID] = &copied
	return nil
}

func (r *memoryMovementRepo) Delete(_ context.Context, id int, _ pgx.Tx) error {
	delete(r.movements, id)
	return nil
}

type movementRepoState struct {
	nextID    int
	movements map[int]*models.Movement
}

func (r *memoryMovementRepo) snapshot() movementRepoState {
	copied := make(map[int]*models.Movement, len(r.movements))
	for id, m := range r.movements {
		c := *m
		copied[id] = &c
	}
	return movementRepoState{nextID: r.nextID, movements: copied}
}

func (r *memoryMovementRepo) restoreSnapshot(s movementRepoState) {
	r.nextID = s.nextID
	r.movements = s.movements
}

type memoryHoldingRepo struct {
	nextID   int
	holdings map[string]*models.Holding
	stocks   *memoryStockRepo
}

func newMemoryHoldingRepo(stocks *memoryStockRepo) *memoryHoldingRepo {
	return &memoryHoldingRepo{nextID: 1, holdings: map[string]*models.Holding{}, stocks: stocks}
}

func holdingKey(userID uuid.UUID, stockID int) string {
	return fmt.Sprintf("%s/%d", userID, stockID)
}

func (r *memoryHoldingRepo) GetByUserAndStock(_ context.Context, userID uuid.UUID, stockID int, _ pgx.Tx) (*models.Holding, error) {
	h, ok := r.holdings[holdingKey(userID, stockID)]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *memoryHoldingRepo) GetByUserWithStock(ctx context.Context, userID uuid.UUID) ([]models.HoldingWithStock, error) {
	var result []models.HoldingWithStock
	for _, h := range r.holdings {
		if h.UserID != userID {
			continue
		}
		joined := models.HoldingWithStock{Holding: *h}
		if stock, _ := r.stocks.GetByID(ctx, h.StockID); stock != nil {
			joined.Ticker = stock.Ticker
			joined.Price = stock.Price
		}
		result = append(result, joined)
	}
	return result, nil
}

func (r *memoryHoldingRepo) Upsert(_ context.Context, h *models.Holding, _ pgx.Tx) error {
	if h.ID == 0 {
		h.ID = r.nextID
		r.nextID++
	}
	copied := *h
	r.holdings[holdingKey(h.UserID, h.StockID)] = &copied
	return nil
}

func (r *memoryHoldingRepo) Delete(_ context.Context, id int, _ pgx.Tx) error {
	for key, h := range r.holdings {
		if h.ID == id {
			delete(r.holdings, key)
			return nil
		}
	}
	return nil
}

type holdingRepoState struct {
	nextID   int
	holdings map[string]*models.Holding
}

func (r *memoryHoldingRepo) snapshot() holdingRepoState {
	copied := make(map[string]*models.Holding, len(r.holdings))
	for key, h := range r.holdings {
		c := *h
		copied[key] = &c
	}
	return holdingRepoState{nextID: r.nextID, holdings: copied}
}

func (r *memoryHoldingRepo) restoreSnapshot(s holdingRepoState) {
	r.nextID = s.nextID
	r.holdings = s.holdings
}

type memoryUserRepo struct {
	users map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*models.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, u *models.User) error {
	copied := *u
	r.users[u.Email] = &copied
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}
