package repositories

import (
	"context"

	"github.com/google/uuid"
	"lend-circle.backend/internal/domain/entities"
)

// PortfolioRepository defines portfolio data operations. A user has at
// most one portfolio; Upsert replaces the holdings wholesale.
type PortfolioRepository interface {
	Upsert(ctx context.Context, portfolio *entities.Portfolio) error
	// GetByUserID returns ErrNotFound when no portfolio exists. Callers
	// in the lending core decide whether that means "zero borrowing
	// power" or a hard rejection.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Portfolio, error)
}
