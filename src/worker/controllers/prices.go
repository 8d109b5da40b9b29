package controllers

import (
	"context"

	"carteira/src/services"
)

type PricesControllerI interface {
	RefreshAllPrices(ctx context.Context) (map[string]string, error)
	RefreshTickerPrice(ctx context.Context, ticker string) (string, error)
}

type PricesController struct {
	Prices *services.PriceService
}

func NewPricesController(prices *services.PriceService) *PricesController {
	return &PricesController{Prices: prices}
}

func (c *PricesController) RefreshAllPrices(ctx context.Context) (map[string]string, error) {
	return c.Prices.RefreshAll(ctx)
}

func (c *PricesController) RefreshTickerPrice(ctx context.Context, ticker string) (string, error) {
	return c.Prices.RefreshTicker(ctx, ticker)
}
