package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is a single declared position in a user's portfolio.
type Holding struct {
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	MarketPrice decimal.Decimal `json:"marketPrice"`
}

// Portfolio holds a user's declared brokerage positions. It is a read
// model for the lending core; updates arrive through the upsert path.
type Portfolio struct {
	UserID    uuid.UUID `json:"userId"`
	Holdings  []Holding `json:"holdings"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarketValue is the sum over holdings of quantity times market price.
func (p *Portfolio) MarketValue() decimal.Decimal {
	total := decimal.Zero
	if p == nil {
		return total
	}
	for _, h := range p.Holdings {
		total = total.Add(h.Quantity.Mul(h.MarketPrice))
	}
	return total
}

// HoldingInput represents one stock entry in a portfolio upsert
type HoldingInput struct {
	Symbol      string `json:"symbol" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	MarketPrice string `json:"marketPrice" binding:"required"`
}

// UpsertPortfolioInput represents input for replacing a portfolio
type UpsertPortfolioInput struct {
	Stocks []HoldingInput `json:"stocks" binding:"required"`
}
