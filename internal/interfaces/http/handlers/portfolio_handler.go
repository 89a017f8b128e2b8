package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/internal/interfaces/http/response"
	"lend-circle.backend/internal/usecases"
)

type portfolioService interface {
	Upsert(ctx context.Context, userID uuid.UUID, input *entities.UpsertPortfolioInput) (*entities.Portfolio, error)
	Get(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error)
}

// PortfolioHandler handles the portfolio import path
type PortfolioHandler struct {
	portfolioUsecase portfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioUsecase *usecases.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolioUsecase: portfolioUsecase}
}

// Upsert replaces the caller's declared holdings
// PUT /api/v1/portfolio
func (h *PortfolioHandler) Upsert(c *gin.Context) {
	var input entities.UpsertPortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	portfolio, err := h.portfolioUsecase.Upsert(c.Request.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidation) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Portfolio updated",
		"portfolio": portfolio,
	})
}

// Get returns the caller's portfolio, empty when none declared
// GET /api/v1/portfolio
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	portfolio, err := h.portfolioUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"portfolio": portfolio})
}
