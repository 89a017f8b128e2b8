package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTrustScore is assigned when a group is created.
const DefaultTrustScore = 100

// TrustRewardOnRepayment is the fixed trust-score reward applied to a
// group when one of its members fully repays a loan. There is no
// corresponding penalty for default.
const TrustRewardOnRepayment = 2

// Group represents a trust group with a shared insurance pool.
type Group struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TrustScore    int             `json:"trustScore"`
	InsurancePool decimal.Decimal `json:"insurancePool"`
	Members       []uuid.UUID     `json:"members"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateGroupInput represents input for creating a group
type CreateGroupInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// ContributeInput represents input for an insurance-pool contribution
type ContributeInput struct {
	Amount string `json:"amount" binding:"required"`
}

// GroupInfo is the group payload returned by the API.
type GroupInfo struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TrustScore    int             `json:"trustScore"`
	InsurancePool decimal.Decimal `json:"insurancePool"`
	Members       []uuid.UUID     `json:"members"`
}

// Info builds the API payload for a group.
func (g *Group) Info() *GroupInfo {
	members := g.Members
	if members == nil {
		members = []uuid.UUID{}
	}
	return &GroupInfo{
		ID:            g.ID,
		Name:          g.Name,
		TrustScore:    g.TrustScore,
		InsurancePool: g.InsurancePool,
		Members:       members,
	}
}

// HasMember reports whether the user is in the group's member set.
func (g *Group) HasMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
