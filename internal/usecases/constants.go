package usecases

import "github.com/shopspring/decimal"

var (
	// CollateralHaircut is the loan-to-value multiplier applied to a
	// portfolio's market value to derive borrowing power.
	CollateralHaircut = decimal.NewFromFloat(0.5)

	// HedgeSpread is the 2% spread applied to simulated FX conversions.
	HedgeSpread = decimal.NewFromFloat(0.98)

	// fxRates is the static conversion table. Unknown currency codes
	// fall back to a rate of 1.
	fxRates = map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.85),
		"INR": decimal.NewFromInt(83),
	}
)

// DefaultLiquidationThreshold gives the stubbed risk signal its 30%
// trigger probability: a uniform draw above the threshold flags risk.
const DefaultLiquidationThreshold = 0.7

// CreditRewardOnRepayment is added to the borrower's credit score when
// a loan is fully repaid.
const CreditRewardOnRepayment = 5
