package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/domain/repositories"
)

// LoanLedger creates, records and closes loan records. Every persisted
// loan is approved; failed limit checks never produce a record.
type LoanLedger struct {
	loanRepo repositories.LoanRepository
}

// NewLoanLedger creates a new loan ledger
func NewLoanLedger(loanRepo repositories.LoanRepository) *LoanLedger {
	return &LoanLedger{loanRepo: loanRepo}
}

// RequestLoan records an immediately-approved loan without a limit
// check. This is the review fast-path, deliberate and distinct from
// Borrow.
func (l *LoanLedger) RequestLoan(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string) (*entities.Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domainerrors.ErrValidation)
	}
	loan := newLoan(userID, amount)
	if reason != "" {
		loan.Reason = null.StringFrom(reason)
	}
	if err := l.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Borrow records an approved loan after checking the collateral-derived
// limit. A rejected borrow persists nothing.
func (l *LoanLedger) Borrow(ctx context.Context, userID uuid.UUID, amount, limit decimal.Decimal) (*entities.Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domainerrors.ErrValidation)
	}
	if amount.GreaterThan(limit) {
		return nil, fmt.Errorf("%w: requested %s, limit %s", domainerrors.ErrLimitExceeded, amount, limit)
	}
	loan := newLoan(userID, amount)
	if err := l.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListLoans returns the user's loans newest first.
func (l *LoanLedger) ListLoans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error) {
	return l.loanRepo.ListByUserID(ctx, userID, limit, offset)
}

// Repay applies a repayment. A payment covering the original principal
// closes the loan (one-way transition); anything less is a partial
// repayment that changes no state. The outstanding amount is not
// tracked, so a loan only ever closes on a single payment >= the
// original principal.
func (l *LoanLedger) Repay(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) (*entities.Loan, entities.RepaymentOutcome, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, "", fmt.Errorf("%w: amount must be positive", domainerrors.ErrValidation)
	}

	loan, err := l.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, "", err
	}
	if loan.Repaid {
		return nil, "", domainerrors.ErrAlreadyRepaid
	}

	if amount.LessThan(loan.Amount) {
		return loan, entities.PartialRepayment, nil
	}

	if err := l.loanRepo.MarkRepaid(ctx, loanID); err != nil {
		return nil, "", err
	}
	loan.Repaid = true
	return loan, entities.FullRepayment, nil
}

func newLoan(userID uuid.UUID, amount decimal.Decimal) *entities.Loan {
	now := time.Now()
	return &entities.Loan{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Approved:  true,
		Repaid:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
