package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/domain/repositories"
)

// GroupUsecase maintains group membership, the insurance pool and the
// trust score, and reacts to loan outcomes.
type GroupUsecase struct {
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
	uow       repositories.UnitOfWork
}

// NewGroupUsecase creates a new group usecase
func NewGroupUsecase(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, uow repositories.UnitOfWork) *GroupUsecase {
	return &GroupUsecase{groupRepo: groupRepo, userRepo: userRepo, uow: uow}
}

// CreateGroup creates a group with the founder as sole member and
// points the founder's group reference at it. A founder switching from
// another group leaves the old one first.
func (u *GroupUsecase) CreateGroup(ctx context.Context, founderID uuid.UUID, input *entities.CreateGroupInput) (*entities.Group, error) {
	now := time.Now()
	group := &entities.Group{
		ID:            uuid.New(),
		Name:          input.Name,
		TrustScore:    entities.DefaultTrustScore,
		InsurancePool: decimal.Zero,
		Members:       []uuid.UUID{founderID},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		founder, err := u.userRepo.GetByID(ctx, founderID)
		if err != nil {
			return err
		}
		if founder.GroupID != nil {
			if err := u.groupRepo.RemoveMember(ctx, *founder.GroupID, founderID); err != nil {
				return err
			}
		}
		if err := u.groupRepo.Create(ctx, group); err != nil {
			return err
		}
		return u.userRepo.SetGroup(ctx, founderID, &group.ID)
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// JoinGroup adds the user to the group. Joining a group the user is
// already in is a no-op. A user switching groups is removed from the
// old group's member set first, so no dangling membership remains.
func (u *GroupUsecase) JoinGroup(ctx context.Context, groupID, userID uuid.UUID) (*entities.Group, error) {
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		group, err := u.groupRepo.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		if group.HasMember(userID) {
			return nil
		}

		user, err := u.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.GroupID != nil && *user.GroupID != groupID {
			if err := u.groupRepo.RemoveMember(ctx, *user.GroupID, userID); err != nil {
				return err
			}
		}
		if err := u.groupRepo.AddMember(ctx, groupID, userID); err != nil {
			return err
		}
		return u.userRepo.SetGroup(ctx, userID, &groupID)
	})
	if err != nil {
		return nil, err
	}
	return u.groupRepo.GetByID(ctx, groupID)
}

// Contribute atomically adds a positive amount to the caller's group
// insurance pool and returns the new balance. Non-positive amounts are
// rejected.
func (u *GroupUsecase) Contribute(ctx context.Context, userID uuid.UUID, input *entities.ContributeInput) (decimal.Decimal, error) {
	amount, err := parsePositiveAmount(input.Amount)
	if err != nil {
		return decimal.Zero, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if user.GroupID == nil {
		return decimal.Zero, domainerrors.ErrNotInGroup
	}
	return u.groupRepo.IncrementPool(ctx, *user.GroupID, amount)
}

// OnFullRepayment applies the fixed trust reward to the group. No
// penalty path exists: default is simply a loan that never repays.
func (u *GroupUsecase) OnFullRepayment(ctx context.Context, groupID uuid.UUID) error {
	return u.groupRepo.IncrementTrustScore(ctx, groupID, entities.TrustRewardOnRepayment)
}

// GetMyGroup returns the caller's group with trust score, pool balance
// and member set.
func (u *GroupUsecase) GetMyGroup(ctx context.Context, userID uuid.UUID) (*entities.Group, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GroupID == nil {
		return nil, domainerrors.ErrNotInGroup
	}
	return u.groupRepo.GetByID(ctx, *user.GroupID)
}
