package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/pkg/jwt"
)

func authedRoute(userID uuid.UUID, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		handler(c)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stubAuthService implements authService with injectable funcs.
type stubAuthService struct {
	register     func(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	login        func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	refreshToken func(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	getUserByID  func(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	return s.register(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.login(ctx, input)
}

func (s *stubAuthService) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	return s.refreshToken(ctx, refreshToken)
}

func (s *stubAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getUserByID(ctx, id)
}

// stubGroupService implements groupService with injectable funcs.
type stubGroupService struct {
	createGroup func(ctx context.Context, founderID uuid.UUID, input *entities.CreateGroupInput) (*entities.Group, error)
	joinGroup   func(ctx context.Context, groupID, userID uuid.UUID) (*entities.Group, error)
	contribute  func(ctx context.Context, userID uuid.UUID, input *entities.ContributeInput) (decimal.Decimal, error)
	getMyGroup  func(ctx context.Context, userID uuid.UUID) (*entities.Group, error)
}

func (s *stubGroupService) CreateGroup(ctx context.Context, founderID uuid.UUID, input *entities.CreateGroupInput) (*entities.Group, error) {
	return s.createGroup(ctx, founderID, input)
}

func (s *stubGroupService) JoinGroup(ctx context.Context, groupID, userID uuid.UUID) (*entities.Group, error) {
	return s.joinGroup(ctx, groupID, userID)
}

func (s *stubGroupService) Contribute(ctx context.Context, userID uuid.UUID, input *entities.ContributeInput) (decimal.Decimal, error) {
	return s.contribute(ctx, userID, input)
}

func (s *stubGroupService) GetMyGroup(ctx context.Context, userID uuid.UUID) (*entities.Group, error) {
	return s.getMyGroup(ctx, userID)
}

// stubPortfolioService implements portfolioService with injectable funcs.
type stubPortfolioService struct {
	upsert func(ctx context.Context, userID uuid.UUID, input *entities.UpsertPortfolioInput) (*entities.Portfolio, error)
	get    func(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error)
}

func (s *stubPortfolioService) Upsert(ctx context.Context, userID uuid.UUID, input *entities.UpsertPortfolioInput) (*entities.Portfolio, error) {
	return s.upsert(ctx, userID, input)
}

func (s *stubPortfolioService) Get(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error) {
	return s.get(ctx, userID)
}

// stubLendingService implements lendingService with injectable funcs.
type stubLendingService struct {
	borrowingPower   func(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	borrow           func(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error)
	autoRoll         func(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error)
	submit           func(ctx context.Context, userID uuid.UUID, input *entities.SubmitLoanInput) (*entities.Loan, error)
	listLoans        func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error)
	repay            func(ctx context.Context, loanID uuid.UUID, input *entities.RepayInput) (*entities.RepaymentResult, error)
	liquidationCheck func(ctx context.Context, userID uuid.UUID) *entities.LiquidationSignal
	simulateFX       func(amount, currency string) (*entities.FXQuote, error)
}

func (s *stubLendingService) BorrowingPower(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.borrowingPower(ctx, userID)
}

func (s *stubLendingService) Borrow(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error) {
	return s.borrow(ctx, userID, input)
}

func (s *stubLendingService) AutoRoll(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error) {
	return s.autoRoll(ctx, userID, input)
}

func (s *stubLendingService) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitLoanInput) (*entities.Loan, error) {
	return s.submit(ctx, userID, input)
}

func (s *stubLendingService) ListLoans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error) {
	return s.listLoans(ctx, userID, limit, offset)
}

func (s *stubLendingService) Repay(ctx context.Context, loanID uuid.UUID, input *entities.RepayInput) (*entities.RepaymentResult, error) {
	return s.repay(ctx, loanID, input)
}

func (s *stubLendingService) LiquidationCheck(ctx context.Context, userID uuid.UUID) *entities.LiquidationSignal {
	return s.liquidationCheck(ctx, userID)
}

func (s *stubLendingService) SimulateFX(amount, currency string) (*entities.FXQuote, error) {
	return s.simulateFX(amount, currency)
}
