package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/internal/interfaces/http/response"
	"lend-circle.backend/internal/usecases"
	"lend-circle.backend/pkg/utils"
)

type lendingService interface {
	BorrowingPower(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Borrow(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error)
	AutoRoll(ctx context.Context, userID uuid.UUID, input *entities.BorrowInput) (*entities.Loan, error)
	Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitLoanInput) (*entities.Loan, error)
	ListLoans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error)
	Repay(ctx context.Context, loanID uuid.UUID, input *entities.RepayInput) (*entities.RepaymentResult, error)
	LiquidationCheck(ctx context.Context, userID uuid.UUID) *entities.LiquidationSignal
	SimulateFX(amount, currency string) (*entities.FXQuote, error)
}

// LendingHandler handles the loan lifecycle and FX simulation endpoints
type LendingHandler struct {
	lendingUsecase lendingService
}

// NewLendingHandler creates a new lending handler
func NewLendingHandler(lendingUsecase *usecases.LendingUsecase) *LendingHandler {
	return &LendingHandler{lendingUsecase: lendingUsecase}
}

// ListLoans returns the caller's loans newest first
// GET /api/v1/loans
func (h *LendingHandler) ListLoans(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	params := utils.GetPaginationParams(page, limit)

	loans, total, err := h.lendingUsecase.ListLoans(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"loans":      loans,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// BorrowingPower returns the caller's collateral-derived limit
// GET /api/v1/loans/borrowing-power
func (h *LendingHandler) BorrowingPower(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	limit, err := h.lendingUsecase.BorrowingPower(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"borrowingPower": limit})
}

// Borrow requests a collateral-checked loan
// POST /api/v1/loans/borrow
func (h *LendingHandler) Borrow(c *gin.Context) {
	var input entities.BorrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	loan, err := h.lendingUsecase.Borrow(c.Request.Context(), userID, &input)
	if err != nil {
		h.rejectBorrow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Loan approved",
		"loan":    loan,
	})
}

// AutoRoll requests a loan rollover against pledged collateral
// POST /api/v1/loans/auto-roll
func (h *LendingHandler) AutoRoll(c *gin.Context) {
	var input entities.BorrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	loan, err := h.lendingUsecase.AutoRoll(c.Request.Context(), userID, &input)
	if err != nil {
		h.rejectBorrow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Loan rolled over",
		"loan":    loan,
	})
}

// Submit records a loan request approved without a limit check
// POST /api/v1/loans/submit
func (h *LendingHandler) Submit(c *gin.Context) {
	var input entities.SubmitLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	loan, err := h.lendingUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidation) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Loan submitted",
		"loan":    loan,
	})
}

// Repay applies a repayment to a loan
// POST /api/v1/loans/:id/repay
func (h *LendingHandler) Repay(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid loan ID"))
		return
	}

	var input entities.RepayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if _, ok := middleware.GetUserID(c); !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.lendingUsecase.Repay(c.Request.Context(), loanID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrValidation):
			response.Error(c, domainerrors.BadRequest(err.Error()))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("Loan not found"))
		case errors.Is(err, domainerrors.ErrAlreadyRepaid):
			response.Error(c, domainerrors.Conflict("Loan is already repaid"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// LiquidationCheck evaluates the stubbed collateral risk signal
// POST /api/v1/loans/liquidation-check
func (h *LendingHandler) LiquidationCheck(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	signal := h.lendingUsecase.LiquidationCheck(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, signal)
}

// SimulateFX quotes a hedged currency conversion
// GET /api/v1/fx/simulate?amount=100&currency=EUR
func (h *LendingHandler) SimulateFX(c *gin.Context) {
	amount := c.Query("amount")
	currency := c.Query("currency")
	if amount == "" || currency == "" {
		response.Error(c, domainerrors.BadRequest("amount and currency are required"))
		return
	}

	quote, err := h.lendingUsecase.SimulateFX(amount, currency)
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidation) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// rejectBorrow maps borrow-path rejections onto the error taxonomy shared
// by Borrow and AutoRoll.
func (h *LendingHandler) rejectBorrow(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrValidation):
		response.Error(c, domainerrors.BadRequest(err.Error()))
	case errors.Is(err, domainerrors.ErrLimitExceeded):
		response.Error(c, domainerrors.UnprocessableEntity(err.Error(), err))
	case errors.Is(err, domainerrors.ErrNoCollateral):
		response.Error(c, domainerrors.UnprocessableEntity("No collateral pledged; roll-over requires a portfolio", err))
	default:
		response.Error(c, err)
	}
}
