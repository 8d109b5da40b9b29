package controllers

import (
	"context"

	"carteira/src/models"
	"carteira/src/repositories"
	"carteira/src/schemas"
	"carteira/src/utils"
)

type StocksControllerI interface {
	GetAllStocks(ctx context.Context) ([]*schemas.StockResponse, error)
	GetStockByID(ctx context.Context, id int) (*schemas.StockResponse, error)
	CreateStock(ctx context.Context, req *schemas.CreateStockRequest) (*schemas.StockResponse, error)
	UpdateStock(ctx context.Context, req *schemas.UpdateStockRequest) (*schemas.StockResponse, error)
}

type StocksController struct {
	Stocks repositories.StockRepository
}

func NewStocksController(stocks repositories.StockRepository) *StocksController {
	return &StocksController{Stocks: stocks}
}

func (c *StocksController) GetAllStocks(ctx context.Context) ([]*schemas.StockResponse, error) {
	stocks, err := c.Stocks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.StockResponse, len(stocks))
	for i, s := range stocks {
		responses[i] = stockResponse(&s)
	}
	return responses, nil
}

func (c *StocksController) GetStockByID(ctx context.Context, id int) (*schemas.StockResponse, error) {
	stock, err := c.Stocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, utils.NotFound("Ação não encontrada")
	}
	return stockResponse(stock), nil
}

func (c *StocksController) CreateStock(ctx context.Context, req *schemas.CreateStockRequest) (*schemas.StockResponse, error) {
	fields := req.Validate()
	if len(fields) == 0 {
		existing, err := c.Stocks.GetByTicker(ctx, req.Ticker)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fields["ticker"] = "Ticker já cadastrado"
		}
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	stock := &models.Stock{Ticker: req.Ticker, Price: req.Price}
	if err := c.Stocks.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stockResponse(stock), nil
}

func (c *StocksController) UpdateStock(ctx context.Context, req *schemas.UpdateStockRequest) (*schemas.StockResponse, error) {
	stock, err := c.Stocks.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, utils.NotFound("Ação não encontrada")
	}

	fields := req.Validate()
	if len(fields) == 0 && req.Ticker != stock.Ticker {
		existing, err := c.Stocks.GetByTicker(ctx, req.Ticker)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fields["ticker"] = "Ticker já cadastrado"
		}
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	stock.Ticker = req.Ticker
	stock.Price = req.Price
	if err := c.Stocks.Update(ctx, stock); err != nil {
		return nil, err
	}
	return stockResponse(stock), nil
}

func stockResponse(s *models.Stock) *schemas.StockResponse {
	return &schemas.StockResponse{
		ID:        s.ID,
		Ticker:    s.Ticker,
		Price:     s.Price,
		UpdatedAt: s.UpdatedAt,
	}
}
