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

// GroupRepository implements group data operations
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new group with its initial member set
func (r *GroupRepository) Create(ctx context.Context, group *entities.Group) error {
	db := GetDB(ctx, r.db).WithContext(ctx)
	m := &models.Group{
		ID:            group.ID,
		Name:          group.Name,
		TrustScore:    group.TrustScore,
		InsurancePool: group.InsurancePool.String(),
		CreatedAt:     group.CreatedAt,
		UpdatedAt:     group.UpdatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return err
	}
	for _, userID := range group.Members {
		member := &models.GroupMember{
			ID:        uuid.New(),
			GroupID:   group.ID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(member).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID gets a group with its member set
func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Group, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Group
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var memberModels []models.GroupMember
	if err := db.Where("group_id = ?", id).Order("created_at ASC").Find(&memberModels).Error; err != nil {
		return nil, err
	}

	return toGroupEntity(&m, memberModels)
}

// AddMember inserts the user into the member set; no-op if already present.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var count int64
	if err := db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	member := &models.GroupMember{
		ID:        uuid.New(),
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	return db.Create(member).Error
}

// RemoveMember drops the user from the member set if present.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

// IncrementPool atomically adds amount to the insurance pool and
// returns the new balance.
func (r *GroupRepository) IncrementPool(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.Group{}).
		Where("id = ?", groupID).
		Updates(map[string]interface{}{
			"insurance_pool": gorm.Expr("insurance_pool + CAST(? AS NUMERIC)", amount.String()),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, domainerrors.ErrNotFound
	}

	var m models.Group
	if err := db.Select("insurance_pool").Where("id = ?", groupID).First(&m).Error; err != nil {
		return decimal.Zero, err
	}
	balance, err := decimal.NewFromString(m.InsurancePool)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid pool balance %q: %w", m.InsurancePool, err)
	}
	return balance, nil
}

// IncrementTrustScore atomically adds delta to the trust score.
func (r *GroupRepository) IncrementTrustScore(ctx context.Context, groupID uuid.UUID, delta int) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Group{}).
		Where("id = ?", groupID).
		Updates(map[string]interface{}{
			"trust_score": gorm.Expr("trust_score + ?", delta),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toGroupEntity(m *models.Group, memberModels []models.GroupMember) (*entities.Group, error) {
	pool, err := decimal.NewFromString(m.InsurancePool)
	if err != nil {
		return nil, fmt.Errorf("invalid pool balance %q: %w", m.InsurancePool, err)
	}
	members := make([]uuid.UUID, 0, len(memberModels))
	for _, mm := range memberModels {
		members = append(members, mm.UserID)
	}
	return &entities.Group{
		ID:            m.ID,
		Name:          m.Name,
		TrustScore:    m.TrustScore,
		InsurancePool: pool,
		Members:       members,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
