package schemas

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const MaxTickerLength = 5

type CreateStockRequest struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

// Validate returns per-field messages; an empty map means the request is
// acceptable.
func (r *CreateStockRequest) Validate() map[string]string {
	fields := map[string]string{}
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	if r.Ticker == "" {
		fields["ticker"] = "Ticker é obrigatório"
	} else if len(r.Ticker) > MaxTickerLength {
		fields["ticker"] = "Ticker deve ter no máximo 5 caracteres"
	}
	if !r.Price.IsPositive() {
		fields["price"] = "Preço deve ser maior que zero"
	}
	return fields
}

type UpdateStockRequest struct {
	ID int `json:"id"`
	CreateStockRequest
}

type StockResponse struct {
	ID        int             `json:"id"`
	Ticker    string          `json:"ticker"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}
