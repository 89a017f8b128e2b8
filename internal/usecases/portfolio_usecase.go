package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/domain/repositories"
)

// PortfolioUsecase handles the portfolio import path. The lending core
// only ever reads portfolios; writes arrive here.
type PortfolioUsecase struct {
	portfolioRepo repositories.PortfolioRepository
}

// NewPortfolioUsecase creates a new portfolio usecase
func NewPortfolioUsecase(portfolioRepo repositories.PortfolioRepository) *PortfolioUsecase {
	return &PortfolioUsecase{portfolioRepo: portfolioRepo}
}

// Upsert replaces the user's declared holdings wholesale.
func (u *PortfolioUsecase) Upsert(ctx context.Context, userID uuid.UUID, input *entities.UpsertPortfolioInput) (*entities.Portfolio, error) {
	holdings := make([]entities.Holding, 0, len(input.Stocks))
	for _, s := range input.Stocks {
		symbol := strings.ToUpper(strings.TrimSpace(s.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("%w: empty symbol", domainerrors.ErrValidation)
		}
		qty, err := parsePositiveAmount(s.Quantity)
		if err != nil {
			return nil, fmt.Errorf("holding %s quantity: %w", symbol, err)
		}
		price, err := parsePositiveAmount(s.MarketPrice)
		if err != nil {
			return nil, fmt.Errorf("holding %s market price: %w", symbol, err)
		}
		holdings = append(holdings, entities.Holding{
			Symbol:      symbol,
			Quantity:    qty,
			MarketPrice: price,
		})
	}

	portfolio := &entities.Portfolio{
		UserID:    userID,
		Holdings:  holdings,
		UpdatedAt: time.Now(),
	}
	if err := u.portfolioRepo.Upsert(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// Get returns the user's portfolio, or an empty one when none exists.
func (u *PortfolioUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error) {
	portfolio, err := u.portfolioRepo.GetByUserID(ctx, userID)
	if err == domainerrors.ErrNotFound {
		return &entities.Portfolio{UserID: userID, Holdings: []entities.Holding{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return portfolio, nil
}

// MarketValue is exposed for callers that want the raw collateral value
// next to the borrowing limit.
func (u *PortfolioUsecase) MarketValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	portfolio, err := u.Get(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return portfolio.MarketValue(), nil
}
