package repositories

import (
	"context"

	"github.com/google/uuid"
	"lend-circle.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// SetGroup points the user's group reference at the given group,
	// or clears it when groupID is nil.
	SetGroup(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) error
	// AdjustCreditScore atomically adds delta to the user's credit score.
	AdjustCreditScore(ctx context.Context, userID uuid.UUID, delta int) error
}
