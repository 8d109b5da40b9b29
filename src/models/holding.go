package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is the owner's current position in one stock: outstanding
// quantity, invested value and the weighted average cost of the
// outstanding units. A row exists only while quantity > 0; it is derived
// from the owner's movements and must never be edited directly.
type Holding struct {
	ID            int             `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	StockID       int             `db:"stock_id"`
	InvestedValue decimal.Decimal `db:"invested_value"`
	AverageCost   decimal.Decimal `db:"average_cost"`
	Quantity      int             `db:"quantity"`
}

// HoldingWithStock is a holding joined with its stock's ticker and
// current price, as the dashboard reads it.
type HoldingWithStock struct {
	Holding
	Ticker string          `db:"ticker"`
	Price  decimal.Decimal `db:"price"`
}

// NewHolding opens a position from the first buy on a stock.
func NewHolding(userID uuid.UUID, stockID int, totalValue decimal.Decimal, quantity int) *Holding {
	return &Holding{
		UserID:        userID,
		StockID:       stockID,
		InvestedValue: totalValue,
		AverageCost:   totalValue.DivRound(decimal.NewFromInt(int64(quantity)), 2),
		Quantity:      quantity,
	}
}

// ApplyBuy adds a lot and recomputes the weighted average cost.
func (h *Holding) ApplyBuy(totalValue decimal.Decimal, quantity int) {
	h.InvestedValue = h.InvestedValue.Add(totalValue)
	h.Quantity += quantity
	h.AverageCost = h.InvestedValue.DivRound(decimal.NewFromInt(int64(h.Quantity)), 2)
}

// ApplySell removes the cost basis of the sold units, not the sale
// proceeds. The average cost of the remaining units stays as it was.
func (h *Holding) ApplySell(quantity int) {
	h.InvestedValue = h.InvestedValue.Sub(h.AverageCost.Mul(decimal.NewFromInt(int64(quantity))))
	h.Quantity -= quantity
}

// ReverseBuy undoes ApplyBuy for the given original values.
func (h *Holding) ReverseBuy(totalValue decimal.Decimal, quantity int) {
	h.Quantity -= quantity
	h.InvestedValue = h.InvestedValue.Sub(totalValue)
	if h.Quantity > 0 {
		h.AverageCost = h.InvestedValue.DivRound(decimal.NewFromInt(int64(h.Quantity)), 2)
	}
}

// ReverseSell adds back the cost basis recorded on the sell itself
// (avg_sell_price), so the reversal is exact even if later buys moved
// the holding's current average cost.
func (h *Holding) ReverseSell(avgSellPrice decimal.Decimal, quantity int) {
	h.InvestedValue = h.InvestedValue.Add(avgSellPrice.Mul(decimal.NewFromInt(int64(quantity))))
	h.Quantity += quantity
	h.AverageCost = h.InvestedValue.DivRound(decimal.NewFromInt(int64(h.Quantity)), 2)
}
