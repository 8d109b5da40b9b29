package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateMovementRequest struct {
	StockID   int             `json:"stock_id"`
	Date      string          `json:"date"`
	Kind      string          `json:"kind"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Validate checks shape and ranges. Business rules that need the holding
// (sell without position, sell above held quantity) are checked by the
// controller inside the write transaction.
func (r *CreateMovementRequest) Validate() map[string]string {
	fields := map[string]string{}
	if r.StockID <= 0 {
		fields["stock_id"] = "Ação é obrigatória"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		fields["date"] = "Data de movimentação inválida"
	}
	if r.Kind != "C" && r.Kind != "V" {
		fields["kind"] = "Tipo deve ser C (compra) ou V (venda)"
	}
	if !r.UnitPrice.IsPositive() {
		fields["unit_price"] = "Preço deve ser maior que zero"
	}
	if r.Quantity <= 0 {
		fields["quantity"] = "Quantidade deve ser maior que zero"
	}
	return fields
}

// ParsedDate assumes Validate passed.
func (r *CreateMovementRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

type UpdateMovementRequest struct {
	ID int `json:"id"`
	CreateMovementRequest
}

type MovementResponse struct {
	ID           int             `json:"id"`
	StockID      int             `json:"stock_id"`
	Ticker       string          `json:"ticker,omitempty"`
	Date         string          `json:"date"`
	Kind         string          `json:"kind"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	TotalValue   decimal.Decimal `json:"total_value"`
	AvgSellPrice decimal.Decimal `json:"avg_sell_price,omitempty"`
}
