package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Loan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    string    `gorm:"type:decimal(36,18);not null"`
	Approved  bool      `gorm:"not null;default:true"`
	Repaid    bool      `gorm:"not null;default:false"`
	Reason    *string   `gorm:"type:varchar(255)"`
	RepaidAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
