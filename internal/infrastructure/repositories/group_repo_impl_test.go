package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
)

func seedGroup(t *testing.T, repo *GroupRepository, members ...uuid.UUID) *entities.Group {
	t.Helper()
	now := time.Now()
	g := &entities.Group{
		ID:            uuid.New(),
		Name:          "village-a",
		TrustScore:    entities.DefaultTrustScore,
		InsurancePool: decimal.Zero,
		Members:       members,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(context.Background(), g))
	return g
}

func TestGroupRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	founderID := uuid.New()

	g := seedGroup(t, repo, founderID)

	got, err := repo.GetByID(context.Background(), g.ID)
	require.NoError(t, err)
	require.Equal(t, "village-a", got.Name)
	require.Equal(t, entities.DefaultTrustScore, got.TrustScore)
	require.True(t, got.InsurancePool.IsZero())
	require.Equal(t, []uuid.UUID{founderID}, got.Members)
}

func TestGroupRepository_AddMember_DuplicateIsNoop(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()
	memberID := uuid.New()

	g := seedGroup(t, repo)

	require.NoError(t, repo.AddMember(ctx, g.ID, memberID))
	require.NoError(t, repo.AddMember(ctx, g.ID, memberID))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
}

func TestGroupRepository_RemoveMember(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()
	memberID := uuid.New()

	g := seedGroup(t, repo, memberID)
	require.NoError(t, repo.RemoveMember(ctx, g.ID, memberID))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.Empty(t, got.Members)

	// removing a non-member is not an error
	require.NoError(t, repo.RemoveMember(ctx, g.ID, uuid.New()))
}

func TestGroupRepository_IncrementPool(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := seedGroup(t, repo)

	balance, err := repo.IncrementPool(ctx, g.ID, decimal.RequireFromString("25.5"))
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("25.5")), "got %s", balance)

	balance, err = repo.IncrementPool(ctx, g.ID, decimal.RequireFromString("4.5"))
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(30)), "got %s", balance)
}

func TestGroupRepository_IncrementPool_ConcurrentContributions(t *testing.T) {
	db := newTestDB(t)
	serializeWrites(t, db)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := seedGroup(t, repo)

	const contributors = 20
	amount := decimal.RequireFromString("1.5")

	var wg sync.WaitGroup
	errs := make(chan error, contributors)
	for i := 0; i < contributors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementPool(ctx, g.ID, amount)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	want := amount.Mul(decimal.NewFromInt(contributors))
	require.True(t, got.InsurancePool.Equal(want), "pool = %s, want %s", got.InsurancePool, want)
}

func TestGroupRepository_IncrementPool_UnknownGroup(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)

	_, err := repo.IncrementPool(context.Background(), uuid.New(), decimal.NewFromInt(1))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGroupRepository_IncrementTrustScore(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := seedGroup(t, repo)

	require.NoError(t, repo.IncrementTrustScore(ctx, g.ID, entities.TrustRewardOnRepayment))
	require.NoError(t, repo.IncrementTrustScore(ctx, g.ID, entities.TrustRewardOnRepayment))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, entities.DefaultTrustScore+2*entities.TrustRewardOnRepayment, got.TrustScore)
}

func TestGroupRepository_IncrementTrustScore_ConcurrentRewards(t *testing.T) {
	db := newTestDB(t)
	serializeWrites(t, db)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := seedGroup(t, repo)

	const repayments = 10
	var wg sync.WaitGroup
	errs := make(chan error, repayments)
	for i := 0; i < repayments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.IncrementTrustScore(ctx, g.ID, entities.TrustRewardOnRepayment)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, entities.DefaultTrustScore+repayments*entities.TrustRewardOnRepayment, got.TrustScore)
}

func TestGroupRepository_IncrementTrustScore_UnknownGroup(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)

	err := repo.IncrementTrustScore(context.Background(), uuid.New(), 2)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGroupRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createGroupTables(t, db)
	repo := NewGroupRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
