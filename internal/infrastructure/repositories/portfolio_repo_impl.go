package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/infrastructure/models"
)

// PortfolioRepository implements portfolio data operations
type PortfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Upsert replaces the user's portfolio and holdings wholesale.
func (r *PortfolioRepository) Upsert(ctx context.Context, portfolio *entities.Portfolio) error {
	return GetDB(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var existing models.Portfolio
		err := tx.Where("user_id = ?", portfolio.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Portfolio{
				UserID:    portfolio.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			}).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&models.Portfolio{}).
				Where("user_id = ?", portfolio.UserID).
				Update("updated_at", now).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", portfolio.UserID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		for i, h := range portfolio.Holdings {
			row := &models.Holding{
				ID:          uuid.New(),
				UserID:      portfolio.UserID,
				Symbol:      h.Symbol,
				Quantity:    h.Quantity.String(),
				MarketPrice: h.MarketPrice.String(),
				Position:    i,
				CreatedAt:   now,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByUserID gets the user's portfolio; ErrNotFound when none exists.
func (r *PortfolioRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Portfolio
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var rows []models.Holding
	if err := db.Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	holdings := make([]entities.Holding, 0, len(rows))
	for _, row := range rows {
		qty, err := decimal.NewFromString(row.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", row.Quantity, err)
		}
		price, err := decimal.NewFromString(row.MarketPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid market price %q: %w", row.MarketPrice, err)
		}
		holdings = append(holdings, entities.Holding{
			Symbol:      row.Symbol,
			Quantity:    qty,
			MarketPrice: price,
		})
	}

	return &entities.Portfolio{
		UserID:    m.UserID,
		Holdings:  holdings,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
