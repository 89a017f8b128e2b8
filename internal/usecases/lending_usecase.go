package usecases

import (
	"context"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/domain/repositories"
	"lend-circle.backend/pkg/logger"
)

// RiskDraw samples the stubbed liquidation risk signal; it must return
// a uniform value in [0, 1). Injectable so tests are deterministic.
type RiskDraw func() float64

// LendingUsecase is the facade used by the request handlers. It
// sequences valuation, the loan ledger and the group trust engine for
// each lending flow, and keeps every state transition all-or-nothing
// through the unit of work.
type LendingUsecase struct {
	ledger        *LoanLedger
	groups        *GroupUsecase
	portfolioRepo repositories.PortfolioRepository
	userRepo      repositories.UserRepository
	uow           repositories.UnitOfWork

	riskDraw      RiskDraw
	riskThreshold float64
}

// NewLendingUsecase creates a new lending usecase. A nil riskDraw falls
// back to math/rand.
func NewLendingUsecase(
	ledger *LoanLedger,
	groups *GroupUsecase,
	portfolioRepo repositories.PortfolioRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	riskDraw RiskDraw,
) *LendingUsecase {
	if riskDraw == nil {
		riskDraw = rand.Float64
	}
	return &LendingUsecase{
		ledger:        ledger,
		groups:        groups,
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
		uow:           uow,
		riskDraw:      riskDraw,
		riskThreshold: DefaultLiquidationThreshold,
	}
}

// SetRiskThreshold overrides the liquidation trigger threshold; the
// trigger probability is 1 - threshold.
func (u *LendingUsecase) SetRiskThreshold(threshold float64) {
	u.riskThreshold = threshold
}

// BorrowingPower returns the caller's collateral-derived limit. A
// missing portfolio means zero borrowing power, not an error.
func (u *LendingUsecase) BorrowingPower(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	portfolio, err := u.fetchPortfolio(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return BorrowingLimit(portfolio), nil
}

// Borrow runs the collateral-checked borrow flow. A missing portfolio
// degrades to a zero limit, so any positive request is rejected with
// ErrLimitExceeded rather than a collateral fault.
func (u *LendingUsecase) Borrow(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error) {
	amount, err := parsePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	portfolio, err := u.fetchPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := BorrowingLimit(portfolio)

	var loan *entities.Loan
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		loan, err = u.ledger.Borrow(ctx, userID, amount, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "loan approved",
		zap.String("loan_id", loan.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
		zap.String("limit", limit.String()),
	)
	return loan, nil
}

// AutoRoll is the same borrow path but fails closed: a user with no
// pledged portfolio gets a hard ErrNoCollateral instead of the zero
// limit Borrow degrades to. The divergence is deliberate.
func (u *LendingUsecase) AutoRoll(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error) {
	amount, err := parsePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	portfolio, err := u.portfolioRepo.GetByUserID(ctx, userID)
	if err == domainerrors.ErrNotFound {
		return nil, domainerrors.ErrNoCollateral
	}
	if err != nil {
		return nil, err
	}
	limit := BorrowingLimit(portfolio)

	var loan *entities.Loan
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		loan, err = u.ledger.Borrow(ctx, userID, amount, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Submit records an immediately-approved loan with no limit check: the
// "requested, pending manual review" fast-path.
func (u *LendingUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitLoanInput) (*entities.Loan, error) {
	amount, err := parsePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	var loan *entities.Loan
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		loan, err = u.ledger.RequestLoan(ctx, userID, amount, strings.TrimSpace(input.Reason))
		return err
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ListLoans returns the caller's loans newest first.
func (u *LendingUsecase) ListLoans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error) {
	return u.ledger.ListLoans(ctx, userID, limit, offset)
}

// Repay applies a repayment and, on a full repayment, rewards the
// borrower's group and credit score in the same transaction. A
// groupless borrower's repayment succeeds with no trust side effect.
func (u *LendingUsecase) Repay(ctx context.Context, loanID uuid.UUID, input *entities.RepayInput) (*entities.RepaymentResult, error) {
	amount, err := parsePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	var result *entities.RepaymentResult
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		loan, outcome, err := u.ledger.Repay(ctx, loanID, amount)
		if err != nil {
			return err
		}

		if outcome == entities.PartialRepayment {
			result = &entities.RepaymentResult{
				LoanID:  loanID,
				Outcome: outcome,
				Message: "Partial repayment received; loan remains open",
			}
			return nil
		}

		owner, err := u.userRepo.GetByID(ctx, loan.UserID)
		if err != nil {
			return err
		}
		if owner.GroupID != nil {
			if err := u.groups.OnFullRepayment(ctx, *owner.GroupID); err != nil {
				return err
			}
		}
		if err := u.userRepo.AdjustCreditScore(ctx, owner.ID, CreditRewardOnRepayment); err != nil {
			return err
		}

		result = &entities.RepaymentResult{
			LoanID:  loanID,
			Outcome: outcome,
			Message: "Loan fully repaid",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "repayment processed",
		zap.String("loan_id", loanID.String()),
		zap.String("outcome", string(result.Outcome)),
	)
	return result, nil
}

// LiquidationCheck is a stubbed risk signal with a fixed trigger
// probability, independent of actual collateral state. Real risk
// modeling is out of scope.
func (u *LendingUsecase) LiquidationCheck(ctx context.Context, userID uuid.UUID) *entities.LiquidationSignal {
	atRisk := u.riskDraw() > u.riskThreshold
	signal := &entities.LiquidationSignal{AtRisk: atRisk}
	if atRisk {
		signal.Message = "Collateral flagged for liquidation review"
	} else {
		signal.Message = "Collateral position healthy"
	}
	logger.Debug(ctx, "liquidation check",
		zap.String("user_id", userID.String()),
		zap.Bool("at_risk", atRisk),
	)
	return signal
}

// SimulateFX converts an amount through the static rate table with the
// hedge spread applied. Unknown currencies default to a rate of 1.
func (u *LendingUsecase) SimulateFX(amountStr, currency string) (*entities.FXQuote, error) {
	amount, err := parsePositiveAmount(amountStr)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	rate, ok := fxRates[code]
	if !ok {
		rate = decimal.NewFromInt(1)
	}

	return &entities.FXQuote{
		Amount:   amount,
		Currency: code,
		Rate:     rate,
		Hedged:   amount.Mul(rate).Mul(HedgeSpread),
	}, nil
}

func (u *LendingUsecase) fetchPortfolio(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error) {
	portfolio, err := u.portfolioRepo.GetByUserID(ctx, userID)
	if err == domainerrors.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return portfolio, nil
}
