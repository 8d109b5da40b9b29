package schemas

import "github.com/shopspring/decimal"

// HoldingPosition is one carteira row joined with the stock's current
// price and the derived unrealized figures.
type HoldingPosition struct {
	StockID       int             `json:"stock_id"`
	Ticker        string          `json:"ticker"`
	Quantity      int             `json:"quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	InvestedValue decimal.Decimal `json:"invested_value"`
	Price         decimal.Decimal `json:"price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Profit        decimal.Decimal `json:"profit"`
}

type DashboardTotals struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	TotalCurrent  decimal.Decimal `json:"total_current"`
}

type DashboardResponse struct {
	Carteira []HoldingPosition `json:"carteira"`
	// Alocacao repeats the carteira ordered by current value, largest
	// position first.
	Alocacao []HoldingPosition `json:"carteira_alocacao"`
	Totais   DashboardTotals   `json:"totais"`
}

// MonthlyResult holds the realized figures of one calendar month.
// Prejuizo carries the absolute value of the accumulated losses.
type MonthlyResult struct {
	Lucro    decimal.Decimal `json:"lucro"`
	Prejuizo decimal.Decimal `json:"prejuizo"`
}

// MonthlyResultsResponse always carries all twelve months, keyed 1-12.
type MonthlyResultsResponse struct {
	Data map[int]MonthlyResult `json:"data"`
}
