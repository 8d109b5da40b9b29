package controllers

import (
	"context"
	"sort"
	"time"

	"carteira/src/repositories"
	"carteira/src/schemas"
	redis_utils "carteira/src/utils/redis"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardControllerI interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*schemas.DashboardResponse, error)
	GetMonthlyResults(ctx context.Context, userID uuid.UUID, year int) (*schemas.MonthlyResultsResponse, error)
}

// DashboardController is read-only aggregation over holdings and the
// ledger.
type DashboardController struct {
	Holdings  repositories.HoldingRepository
	Movements repositories.MovementRepository
	Cache     *redis_utils.RedisHandler
	CacheTTL  time.Duration
}

func NewDashboardController(
	holdings repositories.HoldingRepository,
	movements repositories.MovementRepository,
	cache *redis_utils.RedisHandler,
	cacheTTL time.Duration,
) *DashboardController {
	return &DashboardController{
		Holdings:  holdings,
		Movements: movements,
		Cache:     cache,
		CacheTTL:  cacheTTL,
	}
}

func (c *DashboardController) GetDashboard(ctx context.Context, userID uuid.UUID) (*schemas.DashboardResponse, error) {
	cacheKey := redis_utils.DashboardKey(userID.String())
	if c.Cache != nil {
		var cached schemas.DashboardResponse
		if err := c.Cache.Get(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	holdings, err := c.Holdings.GetByUserWithStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	carteira := make([]schemas.HoldingPosition, len(holdings))
	totals := schemas.DashboardTotals{
		TotalInvested: decimal.Zero,
		TotalCurrent:  decimal.Zero,
	}
	for i, h := range holdings {
		quantity := decimal.NewFromInt(int64(h.Quantity))
		current := h.Price.Mul(quantity)
		carteira[i] = schemas.HoldingPosition{
			StockID:       h.StockID,
			Ticker:        h.Ticker,
			Quantity:      h.Quantity,
			AverageCost:   h.AverageCost,
			InvestedValue: h.InvestedValue,
			Price:         h.Price,
			CurrentValue:  current,
			Profit:        h.Price.Sub(h.AverageCost).Mul(quantity),
		}
		totals.TotalInvested = totals.TotalInvested.Add(h.InvestedValue)
		totals.TotalCurrent = totals.TotalCurrent.Add(current)
	}

	alocacao := make([]schemas.HoldingPosition, len(carteira))
	copy(alocacao, carteira)
	sort.SliceStable(alocacao, func(i, j int) bool {
		return alocacao[i].CurrentValue.GreaterThan(alocacao[j].CurrentValue)
	})

	response := &schemas.DashboardResponse{
		Carteira: carteira,
		Alocacao: alocacao,
		Totais:   totals,
	}

	if c.Cache != nil {
		_ = c.Cache.Set(cacheKey, response, c.CacheTTL)
	}
	return response, nil
}

// GetMonthlyResults buckets the realized result of the year's sells by
// calendar month. All twelve months are always present.
func (c *DashboardController) GetMonthlyResults(ctx context.Context, userID uuid.UUID, year int) (*schemas.MonthlyResultsResponse, error) {
	sells, err := c.Movements.GetSellsByYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	data := make(map[int]schemas.MonthlyResult, 12)
	for month := 1; month <= 12; month++ {
		data[month] = schemas.MonthlyResult{
			Lucro:    decimal.Zero,
			Prejuizo: decimal.Zero,
		}
	}

	for _, sell := range sells {
		month := int(sell.Date.Month())
		bucket := data[month]
		result := sell.RealizedResult()
		if result.IsPositive() {
			bucket.Lucro = bucket.Lucro.Add(result)
		} else {
			bucket.Prejuizo = bucket.Prejuizo.Sub(result)
		}
		data[month] = bucket
	}

	return &schemas.MonthlyResultsResponse{Data: data}, nil
}
