package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/usecases"
)

type lendingFixture struct {
	loanRepo      *MockLoanRepository
	groupRepo     *MockGroupRepository
	portfolioRepo *MockPortfolioRepository
	userRepo      *MockUserRepository
	uc            *usecases.LendingUsecase
}

func newLendingFixture(riskDraw usecases.RiskDraw) *lendingFixture {
	f := &lendingFixture{
		loanRepo:      new(MockLoanRepository),
		groupRepo:     new(MockGroupRepository),
		portfolioRepo: new(MockPortfolioRepository),
		userRepo:      new(MockUserRepository),
	}
	uow := new(MockUnitOfWork)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Maybe()
	groups := usecases.NewGroupUsecase(f.groupRepo, f.userRepo, uow)
	ledger := usecases.NewLoanLedger(f.loanRepo)
	f.uc = usecases.NewLendingUsecase(ledger, groups, f.portfolioRepo, f.userRepo, uow, riskDraw)
	return f
}

func aaplPortfolio(userID uuid.UUID) *entities.Portfolio {
	return &entities.Portfolio{
		UserID: userID,
		Holdings: []entities.Holding{
			holding("AAPL", "10", "150"),
		},
	}
}

func TestLendingUsecase_BorrowingPower(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", context.Background(), userID).Return(aaplPortfolio(userID), nil).Once()

	limit, err := f.uc.BorrowingPower(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, limit.Equal(decimal.NewFromInt(750)))
}

func TestLendingUsecase_BorrowingPower_NoPortfolioIsZero(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", context.Background(), userID).Return(nil, domainerrors.ErrNotFound).Once()

	limit, err := f.uc.BorrowingPower(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, limit.IsZero())
}

func TestLendingUsecase_Borrow_WithinLimit(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(aaplPortfolio(userID), nil).Once()
	f.loanRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Loan")).Return(nil).Once()

	loan, err := f.uc.Borrow(context.Background(), userID, &entities.BorrowInput{Amount: "700"})
	assert.NoError(t, err)
	assert.True(t, loan.Amount.Equal(decimal.NewFromInt(700)))
	assert.True(t, loan.Approved)
}

func TestLendingUsecase_Borrow_OverLimitRejected(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(aaplPortfolio(userID), nil).Once()

	_, err := f.uc.Borrow(context.Background(), userID, &entities.BorrowInput{Amount: "751"})
	assert.ErrorIs(t, err, domainerrors.ErrLimitExceeded)
	f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLendingUsecase_Borrow_NoPortfolioIsLimitExceeded(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := f.uc.Borrow(context.Background(), userID, &entities.BorrowInput{Amount: "1"})
	assert.ErrorIs(t, err, domainerrors.ErrLimitExceeded)
	assert.NotErrorIs(t, err, domainerrors.ErrNoCollateral)
}

func TestLendingUsecase_Borrow_MalformedAmount(t *testing.T) {
	f := newLendingFixture(nil)

	_, err := f.uc.Borrow(context.Background(), uuid.New(), &entities.BorrowInput{Amount: "not-a-number"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	f.portfolioRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestLendingUsecase_AutoRoll_NoPortfolioIsNoCollateral(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := f.uc.AutoRoll(context.Background(), userID, &entities.BorrowInput{Amount: "1"})
	assert.ErrorIs(t, err, domainerrors.ErrNoCollateral)
	f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLendingUsecase_AutoRoll_WithCollateral(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(aaplPortfolio(userID), nil).Once()
	f.loanRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Loan")).Return(nil).Once()

	loan, err := f.uc.AutoRoll(context.Background(), userID, &entities.BorrowInput{Amount: "500"})
	assert.NoError(t, err)
	assert.NotNil(t, loan)
}

func TestLendingUsecase_AutoRoll_OverLimitRejected(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.portfolioRepo.On("GetByUserID", mock.Anything, userID).Return(aaplPortfolio(userID), nil).Once()

	_, err := f.uc.AutoRoll(context.Background(), userID, &entities.BorrowInput{Amount: "800"})
	assert.ErrorIs(t, err, domainerrors.ErrLimitExceeded)
}

func TestLendingUsecase_Submit_NoCollateralNeeded(t *testing.T) {
	f := newLendingFixture(nil)
	userID := uuid.New()

	f.loanRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Loan")).Return(nil).Once()

	loan, err := f.uc.Submit(context.Background(), userID, &entities.SubmitLoanInput{
		Amount: "5000",
		Reason: "seed capital",
	})
	assert.NoError(t, err)
	assert.True(t, loan.Approved)
	assert.Equal(t, "seed capital", loan.Reason.String)
	f.portfolioRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestLendingUsecase_Repay_FullRewardsGroupAndBorrower(t *testing.T) {
	f := newLendingFixture(nil)
	loanID := uuid.New()
	userID := uuid.New()
	groupID := uuid.New()

	f.loanRepo.On("GetByID", mock.Anything, loanID).Return(&entities.Loan{
		ID:     loanID,
		UserID: userID,
		Amount: decimal.NewFromInt(500),
	}, nil).Once()
	f.loanRepo.On("MarkRepaid", mock.Anything, loanID).Return(nil).Once()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, GroupID: &groupID}, nil).Once()
	f.groupRepo.On("IncrementTrustScore", mock.Anything, groupID, entities.TrustRewardOnRepayment).Return(nil).Once()
	f.userRepo.On("AdjustCreditScore", mock.Anything, userID, usecases.CreditRewardOnRepayment).Return(nil).Once()

	result, err := f.uc.Repay(context.Background(), loanID, &entities.RepayInput{Amount: "500"})
	assert.NoError(t, err)
	assert.Equal(t, entities.FullRepayment, result.Outcome)
	f.groupRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
}

func TestLendingUsecase_Repay_FullWithoutGroupSkipsTrust(t *testing.T) {
	f := newLendingFixture(nil)
	loanID := uuid.New()
	userID := uuid.New()

	f.loanRepo.On("GetByID", mock.Anything, loanID).Return(&entities.Loan{
		ID:     loanID,
		UserID: userID,
		Amount: decimal.NewFromInt(500),
	}, nil).Once()
	f.loanRepo.On("MarkRepaid", mock.Anything, loanID).Return(nil).Once()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID}, nil).Once()
	f.userRepo.On("AdjustCreditScore", mock.Anything, userID, usecases.CreditRewardOnRepayment).Return(nil).Once()

	result, err := f.uc.Repay(context.Background(), loanID, &entities.RepayInput{Amount: "500"})
	assert.NoError(t, err)
	assert.Equal(t, entities.FullRepayment, result.Outcome)
	f.groupRepo.AssertNotCalled(t, "IncrementTrustScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestLendingUsecase_Repay_PartialHasNoSideEffects(t *testing.T) {
	f := newLendingFixture(nil)
	loanID := uuid.New()

	f.loanRepo.On("GetByID", mock.Anything, loanID).Return(&entities.Loan{
		ID:     loanID,
		UserID: uuid.New(),
		Amount: decimal.NewFromInt(500),
	}, nil).Once()

	result, err := f.uc.Repay(context.Background(), loanID, &entities.RepayInput{Amount: "100"})
	assert.NoError(t, err)
	assert.Equal(t, entities.PartialRepayment, result.Outcome)
	f.loanRepo.AssertNotCalled(t, "MarkRepaid", mock.Anything, mock.Anything)
	f.groupRepo.AssertNotCalled(t, "IncrementTrustScore", mock.Anything, mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "AdjustCreditScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestLendingUsecase_Repay_AlreadyRepaid(t *testing.T) {
	f := newLendingFixture(nil)
	loanID := uuid.New()

	f.loanRepo.On("GetByID", mock.Anything, loanID).Return(&entities.Loan{
		ID:     loanID,
		UserID: uuid.New(),
		Amount: decimal.NewFromInt(500),
		Repaid: true,
	}, nil).Once()

	_, err := f.uc.Repay(context.Background(), loanID, &entities.RepayInput{Amount: "500"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRepaid)
}

func TestLendingUsecase_LiquidationCheck_AboveThresholdFlags(t *testing.T) {
	f := newLendingFixture(func() float64 { return 0.9 })

	signal := f.uc.LiquidationCheck(context.Background(), uuid.New())
	assert.True(t, signal.AtRisk)
	assert.NotEmpty(t, signal.Message)
}

func TestLendingUsecase_LiquidationCheck_BelowThresholdHealthy(t *testing.T) {
	f := newLendingFixture(func() float64 { return 0.5 })

	signal := f.uc.LiquidationCheck(context.Background(), uuid.New())
	assert.False(t, signal.AtRisk)
}

func TestLendingUsecase_LiquidationCheck_AtThresholdHealthy(t *testing.T) {
	f := newLendingFixture(func() float64 { return 0.7 })

	signal := f.uc.LiquidationCheck(context.Background(), uuid.New())
	assert.False(t, signal.AtRisk)
}

func TestLendingUsecase_SimulateFX_KnownCurrency(t *testing.T) {
	f := newLendingFixture(nil)

	quote, err := f.uc.SimulateFX("100", "EUR")
	assert.NoError(t, err)
	// 100 * 0.85 * 0.98
	assert.True(t, quote.Hedged.Equal(decimal.RequireFromString("83.3")), "got %s", quote.Hedged)
	assert.Equal(t, "EUR", quote.Currency)
}

func TestLendingUsecase_SimulateFX_UnknownCurrencyDefaultsToParity(t *testing.T) {
	f := newLendingFixture(nil)

	quote, err := f.uc.SimulateFX("100", "XYZ")
	assert.NoError(t, err)
	// 100 * 1 * 0.98
	assert.True(t, quote.Hedged.Equal(decimal.NewFromInt(98)), "got %s", quote.Hedged)
}

func TestLendingUsecase_SimulateFX_LowercaseCode(t *testing.T) {
	f := newLendingFixture(nil)

	quote, err := f.uc.SimulateFX("10", "inr")
	assert.NoError(t, err)
	assert.Equal(t, "INR", quote.Currency)
	// 10 * 83 * 0.98
	assert.True(t, quote.Hedged.Equal(decimal.RequireFromString("813.4")), "got %s", quote.Hedged)
}

func TestLendingUsecase_SimulateFX_MalformedAmount(t *testing.T) {
	f := newLendingFixture(nil)

	_, err := f.uc.SimulateFX("-5", "USD")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
