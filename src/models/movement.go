package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MovementBuy  = "C"
	MovementSell = "V"
)

// Movement is one buy ("C") or sell ("V") event in the owner's ledger.
// TotalValue is always recomputed from UnitPrice and Quantity before a
// write. AvgSellPrice is set only on sells: it snapshots the holding's
// average cost at the moment the sell was accepted and is never
// recomputed afterwards, since realized profit reporting depends on it.
type Movement struct {
	ID           int             `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	StockID      int             `db:"stock_id"`
	Date         time.Time       `db:"date"`
	Kind         string          `db:"kind"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Quantity     int             `db:"quantity"`
	TotalValue   decimal.Decimal `db:"total_value"`
	AvgSellPrice decimal.Decimal `db:"avg_sell_price"`
	CreatedAt    time.Time       `db:"created_at"`
}

// MovementWithTicker joins the ledger row with its stock's ticker for
// listing and export.
type MovementWithTicker struct {
	Movement
	Ticker string `db:"ticker"`
}

// ComputeTotalValue overrides TotalValue with unit_price * quantity.
func (m *Movement) ComputeTotalValue() {
	m.TotalValue = m.UnitPrice.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// RealizedResult is the sale proceeds minus the cost basis recorded at
// sell time. Only meaningful for sells.
func (m *Movement) RealizedResult() decimal.Decimal {
	return m.TotalValue.Sub(m.AvgSellPrice.Mul(decimal.NewFromInt(int64(m.Quantity))))
}
