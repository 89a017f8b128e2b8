package usecases

import (
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
)

// BorrowingLimit converts a portfolio snapshot into a borrowing limit:
// half the portfolio's market value. A nil or empty portfolio yields a
// limit of zero, never an error: no portfolio means no borrowing power,
// not a fault.
func BorrowingLimit(p *entities.Portfolio) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return p.MarketValue().Mul(CollateralHaircut)
}
