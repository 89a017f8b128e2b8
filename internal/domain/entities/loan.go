package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// RepaymentOutcome signals what a repay call achieved.
type RepaymentOutcome string

const (
	FullRepayment    RepaymentOutcome = "FULL"
	PartialRepayment RepaymentOutcome = "PARTIAL"
)

// Loan represents a collateralized loan. Rejected borrow attempts are
// never persisted; every stored loan is approved. Repaid is a one-way
// flag: once true the loan is immutable.
type Loan struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Approved  bool            `json:"approved"`
	Repaid    bool            `json:"repaid"`
	Reason    null.String     `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	RepaidAt  null.Time       `json:"repaidAt,omitempty"`
}

// BorrowInput represents input for a collateral-checked borrow
type BorrowInput struct {
	Amount string `json:"amount" binding:"required"`
}

// SubmitLoanInput represents input for the review fast-path. The loan is
// approved immediately without a limit check.
type SubmitLoanInput struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// RepayInput represents input for repaying a loan
type RepayInput struct {
	Amount string `json:"amount" binding:"required"`
}

// RepaymentResult is the repay response payload.
type RepaymentResult struct {
	LoanID  uuid.UUID        `json:"loanId"`
	Outcome RepaymentOutcome `json:"outcome"`
	Message string           `json:"message"`
}

// LiquidationSignal is the liquidation-check response payload.
type LiquidationSignal struct {
	AtRisk  bool   `json:"atRisk"`
	Message string `json:"message"`
}

// FXQuote is the fx-simulate response payload.
type FXQuote struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Hedged   decimal.Decimal `json:"hedgedAmount"`
}
