package services

import (
	"context"
	"errors"
	"time"

	"carteira/src/clients/fundamentus"
	"carteira/src/repositories"
	"carteira/src/utils"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const (
	priceMaxRetries = 3
	priceRetryWait  = 15 * time.Second
)

// PriceService refreshes registered stock prices from fundamentus. One
// run is single-threaded and infrequent; transient transport failures
// are retried a few times before the ticker is reported as failed.
type PriceService struct {
	Stocks repositories.StockRepository
	Client fundamentus.FundamentusServiceClientI
	// RetryWait is overridable so tests don't sleep.
	RetryWait time.Duration
}

func NewPriceService(stocks repositories.StockRepository, client fundamentus.FundamentusServiceClientI) *PriceService {
	return &PriceService{Stocks: stocks, Client: client, RetryWait: priceRetryWait}
}

// RefreshAll walks every registered stock and returns per-ticker
// feedback. A ticker that fails does not stop the run.
func (s *PriceService) RefreshAll(ctx context.Context) (map[string]string, error) {
	logger := utils.LoggerFromContext(ctx)

	stocks, err := s.Stocks.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	feedback := make(map[string]string, len(stocks))
	for _, stock := range stocks {
		price, err := s.fetchQuote(ctx, stock.Ticker)
		if errors.Is(err, fundamentus.ErrQuoteNotFound) {
			feedback[stock.Ticker] = "elemento não encontrado para a ação"
			continue
		}
		if err != nil {
			logger.WithError(err).WithField("ticker", stock.Ticker).Warn("price refresh failed")
			feedback[stock.Ticker] = "erro ao acessar a página"
			continue
		}
		if err := s.Stocks.UpdatePrice(ctx, stock.ID, price); err != nil {
			return nil, err
		}
		feedback[stock.Ticker] = "atualizada para: " + price.StringFixed(2)
	}
	return feedback, nil
}

// RefreshTicker refreshes a single registered ticker.
func (s *PriceService) RefreshTicker(ctx context.Context, ticker string) (string, error) {
	stock, err := s.Stocks.GetByTicker(ctx, ticker)
	if err != nil {
		return "", err
	}
	if stock == nil {
		return "", utils.NotFound("Ação não cadastrada: " + ticker)
	}

	price, err := s.fetchQuote(ctx, stock.Ticker)
	if err != nil {
		return "", err
	}
	if err := s.Stocks.UpdatePrice(ctx, stock.ID, price); err != nil {
		return "", err
	}
	return "atualizada para: " + price.StringFixed(2), nil
}

func (s *PriceService) fetchQuote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	var price decimal.Decimal
	backoff := retry.WithMaxRetries(priceMaxRetries, retry.NewConstant(s.RetryWait))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := s.Client.GetQuote(ticker)
		if errors.Is(err, fundamentus.ErrQuoteNotFound) {
			return err
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		price = p
		return nil
	})
	return price, err
}
