package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
)

// GroupRepository defines group data operations. Pool and trust-score
// mutations are atomic increments at the storage layer so that
// concurrent members of the same group never lose updates.
type GroupRepository interface {
	Create(ctx context.Context, group *entities.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Group, error)
	// AddMember inserts the user into the member set. Adding an existing
	// member is a no-op.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	// RemoveMember drops the user from the member set if present.
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	// IncrementPool atomically adds amount to the insurance pool and
	// returns the new balance.
	IncrementPool(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	// IncrementTrustScore atomically adds delta to the trust score.
	IncrementTrustScore(ctx context.Context, groupID uuid.UUID, delta int) error
}
