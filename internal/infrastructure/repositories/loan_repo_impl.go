package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/infrastructure/models"
)

// LoanRepository implements loan data operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create persists a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	m := &models.Loan{
		ID:        loan.ID,
		UserID:    loan.UserID,
		Amount:    loan.Amount.String(),
		Approved:  loan.Approved,
		Repaid:    loan.Repaid,
		Reason:    loan.Reason.Ptr(),
		CreatedAt: loan.CreatedAt,
		UpdatedAt: loan.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	var m models.Loan
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toLoanEntity(&m)
}

// ListByUserID lists loans newest first. A limit of 0 returns all.
func (r *LoanRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Loan, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Loan{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// id breaks ties between loans created in the same timestamp tick,
	// keeping page order stable.
	query := db.Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Loan
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	loans := make([]*entities.Loan, 0, len(rows))
	for i := range rows {
		loan, err := toLoanEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		loans = append(loans, loan)
	}
	return loans, int(total), nil
}

// MarkRepaid flips the repaid flag exactly once. The conditional update
// is the single-writer guard against double repayment.
func (r *LoanRepository) MarkRepaid(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)
	now := time.Now()

	result := db.Model(&models.Loan{}).
		Where("id = ? AND repaid = ?", id, false).
		Updates(map[string]interface{}{
			"repaid":     true,
			"repaid_at":  now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var m models.Loan
		if err := db.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		return domainerrors.ErrAlreadyRepaid
	}
	return nil
}

func toLoanEntity(m *models.Loan) (*entities.Loan, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid loan amount %q: %w", m.Amount, err)
	}
	return &entities.Loan{
		ID:        m.ID,
		UserID:    m.UserID,
		Amount:    amount,
		Approved:  m.Approved,
		Repaid:    m.Repaid,
		Reason:    null.StringFromPtr(m.Reason),
		RepaidAt:  null.TimeFromPtr(m.RepaidAt),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
