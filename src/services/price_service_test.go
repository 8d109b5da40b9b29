package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carteira/src/clients/fundamentus"
	"carteira/src/models"
	"carteira/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStockRepo struct {
	stocks []models.Stock
	prices map[int]decimal.Decimal
}

func newMemoryStockRepo(stocks ...models.Stock) *memoryStockRepo {
	return &memoryStockRepo{stocks: stocks, prices: map[int]decimal.Decimal{}}
}

func (r *memoryStockRepo) GetAll(_ context.Context) ([]models.Stock, error) {
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
	r.prices[id] = price
	return nil
}

// quoteClientMock answers GetQuote from a script of per-ticker results
// and counts the calls it receives.
type quoteClientMock struct {
	quotes map[string]decimal.Decimal
	errs   map[string]error
	calls  map[string]int
	// failuresBeforeSuccess makes the first N calls per ticker fail with
	// a transient error.
	failuresBeforeSuccess int
}

func newQuoteClientMock() *quoteClientMock {
	return &quoteClientMock{
		quotes: map[string]decimal.Decimal{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (c *quoteClientMock) GetQuote(ticker string) (decimal.Decimal, error) {
	c.calls[ticker]++
	if c.calls[ticker] <= c.failuresBeforeSuccess {
		return decimal.Zero, errors.New("connection reset")
	}
	if err, ok := c.errs[ticker]; ok {
		return decimal.Zero, err
	}
	return c.quotes[ticker], nil
}

func newTestPriceService(stocks *memoryStockRepo, client *quoteClientMock) *services.PriceService {
	service := services.NewPriceService(stocks, client)
	service.RetryWait = time.Millisecond
	return service
}

func TestRefreshAllUpdatesEveryTicker(t *testing.T) {
	stocks := newMemoryStockRepo(
		models.Stock{ID: 1, Ticker: "PETR4"},
		models.Stock{ID: 2, Ticker: "VALE3"},
	)
	client := newQuoteClientMock()
	client.quotes["PETR4"] = dec("32.50")
	client.quotes["VALE3"] = dec("61.07")

	feedback, err := newTestPriceService(stocks, client).RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "atualizada para: 32.50", feedback["PETR4"])
	assert.Equal(t, "atualizada para: 61.07", feedback["VALE3"])
	assert.True(t, stocks.prices[1].Equal(dec("32.50")))
	assert.True(t, stocks.prices[2].Equal(dec("61.07")))
}

func TestRefreshAllContinuesPastFailedTicker(t *testing.T) {
	stocks := newMemoryStockRepo(
		models.Stock{ID: 1, Ticker: "PETR4"},
		models.Stock{ID: 2, Ticker: "XXXX1"},
	)
	client := newQuoteClientMock()
	client.quotes["PETR4"] = dec("32.50")
	client.errs["XXXX1"] = fundamentus.ErrQuoteNotFound

	feedback, err := newTestPriceService(stocks, client).RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "atualizada para: 32.50", feedback["PETR4"])
	assert.Equal(t, "elemento não encontrado para a ação", feedback["XXXX1"])
	_, updated := stocks.prices[2]
	assert.False(t, updated)
}

func TestRefreshAllRetriesTransientFailures(t *testing.T) {
	stocks := newMemoryStockRepo(models.Stock{ID: 1, Ticker: "PETR4"})
	client := newQuoteClientMock()
	client.quotes["PETR4"] = dec("32.50")
	client.failuresBeforeSuccess = 2

	feedback, err := newTestPriceService(stocks, client).RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "atualizada para: 32.50", feedback["PETR4"])
	assert.Equal(t, 3, client.calls["PETR4"])
}

func TestRefreshAllGivesUpAfterRetriesExhausted(t *testing.T) {
	stocks := newMemoryStockRepo(models.Stock{ID: 1, Ticker: "PETR4"})
	client := newQuoteClientMock()
	client.failuresBeforeSuccess = 10

	feedback, err := newTestPriceService(stocks, client).RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "erro ao acessar a página", feedback["PETR4"])
	assert.Equal(t, 4, client.calls["PETR4"])
}

func TestRefreshAllDoesNotRetryMissingQuote(t *testing.T) {
	stocks := newMemoryStockRepo(models.Stock{ID: 1, Ticker: "XXXX1"})
	client := newQuoteClientMock()
	client.errs["XXXX1"] = fundamentus.ErrQuoteNotFound

	_, err := newTestPriceService(stocks, client).RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls["XXXX1"])
}

func TestRefreshTicker(t *testing.T) {
	stocks := newMemoryStockRepo(models.Stock{ID: 1, Ticker: "PETR4"})
	client := newQuoteClientMock()
	client.quotes["PETR4"] = dec("32.50")

	feedback, err := newTestPriceService(stocks, client).RefreshTicker(context.Background(), "PETR4")

	require.NoError(t, err)
	assert.Equal(t, "atualizada para: 32.50", feedback)
	assert.True(t, stocks.prices[1].Equal(dec("32.50")))
}

func TestRefreshTickerUnknownTicker(t *testing.T) {
	stocks := newMemoryStockRepo()
	client := newQuoteClientMock()

	_, err := newTestPriceService(stocks, client).RefreshTicker(context.Background(), "PETR4")

	assert.Error(t, err)
	assert.Empty(t, client.calls)
}
