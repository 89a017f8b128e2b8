package repositories

import (
	"context"

	"github.com/google/uuid"
	"lend-circle.backend/internal/domain/entities"
)

// LoanRepository defines loan data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error)
	// ListByUserID returns loans newest first plus the total count.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error)
	// MarkRepaid performs the single one-way repaid transition as a
	// conditional update. Returns ErrNotFound for a missing loan and
	// ErrAlreadyRepaid when the flag was already set.
	MarkRepaid(ctx context.Context, id uuid.UUID) error
}
