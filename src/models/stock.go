package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a registered ticker with its last known price. Prices are
// refreshed by the worker; the ticker is the business identity and never
// changes meaning once movements reference it.
type Stock struct {
	ID        int             `db:"id"`
	Ticker    string          `db:"ticker"`
	Price     decimal.Decimal `db:"price"`
	UpdatedAt time.Time       `db:"updated_at"`
}
