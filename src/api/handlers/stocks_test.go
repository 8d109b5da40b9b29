package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"carteira/src/schemas"
	"carteira/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllStocks(t *testing.T) {
	stocks := &fakeStocksController{
		getAll: func(context.Context) ([]*schemas.StockResponse, error) {
			return []*schemas.StockResponse{
				{ID: 1, Ticker: "PETR4", Price: decimal.RequireFromString("32.50")},
			}, nil
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodGet, "/api/stocks/", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body []schemas.StockResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "PETR4", body[0].Ticker)
}

func TestGetAllStocksRequiresToken(t *testing.T) {
	fixture := newRouterFixture(&fakeStocksController{}, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.anonymousRequest(http.MethodGet, "/api/stocks/", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetStockByID(t *testing.T) {
	stocks := &fakeStocksController{
		getByID: func(_ context.Context, id int) (*schemas.StockResponse, error) {
			require.Equal(t, 7, id)
			return &schemas.StockResponse{ID: 7, Ticker: "VALE3"}, nil
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodGet, "/api/stocks/7", "")

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetStockByIDInvalidParam(t *testing.T) {
	fixture := newRouterFixture(&fakeStocksController{}, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodGet, "/api/stocks/abc", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetStockByIDNotFound(t *testing.T) {
	stocks := &fakeStocksController{
		getByID: func(context.Context, int) (*schemas.StockResponse, error) {
			return nil, utils.NotFound("Ação não encontrada")
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodGet, "/api/stocks/42", "")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error": "Ação não encontrada"}`, recorder.Body.String())
}

func TestCreateStock(t *testing.T) {
	stocks := &fakeStocksController{
		create: func(_ context.Context, req *schemas.CreateStockRequest) (*schemas.StockResponse, error) {
			return &schemas.StockResponse{ID: 1, Ticker: req.Ticker, Price: req.Price}, nil
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodPost, "/api/stocks/", `{"ticker": "PETR4", "price": "32.50"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCreateStockValidationErrorBody(t *testing.T) {
	stocks := &fakeStocksController{
		create: func(context.Context, *schemas.CreateStockRequest) (*schemas.StockResponse, error) {
			return nil, utils.NewValidationError(map[string]string{"ticker": "Ticker é obrigatório"})
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodPost, "/api/stocks/", `{"price": "32.50"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"errors": {"ticker": "Ticker é obrigatório"}}`, recorder.Body.String())
}

func TestCreateStockMalformedBody(t *testing.T) {
	fixture := newRouterFixture(&fakeStocksController{}, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodPost, "/api/stocks/", "{not json")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateStockTakesIDFromURL(t *testing.T) {
	stocks := &fakeStocksController{
		update: func(_ context.Context, req *schemas.UpdateStockRequest) (*schemas.StockResponse, error) {
			require.Equal(t, 5, req.ID)
			return &schemas.StockResponse{ID: req.ID, Ticker: req.Ticker}, nil
		},
	}
	fixture := newRouterFixture(stocks, &fakeMovementsController{}, &fakeDashboardController{}, &fakeUsersController{})

	recorder := fixture.request(t, http.MethodPut, "/api/stocks/5", `{"ticker": "PETR3", "price": "35.00"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
}
