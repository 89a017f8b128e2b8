package models

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio is keyed by user: at most one per user.
type Portfolio struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holding rows are replaced wholesale on portfolio upsert; Position
// preserves the declared order.
type Holding struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Symbol      string    `gorm:"type:varchar(20);not null"`
	Quantity    string    `gorm:"type:decimal(36,18);not null"`
	MarketPrice string    `gorm:"type:decimal(36,18);not null"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time
}
