package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	TrustScore    int       `gorm:"not null;default:100"`
	InsurancePool string    `gorm:"type:decimal(36,18);not null;default:'0'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// GroupMember is the group member set. The unique index on user_id
// backs the at-most-one-group rule.
type GroupMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time
}
