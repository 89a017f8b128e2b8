package entities

import (
	"time"

	"github.com/google/uuid"
)

// CreditBadge is the label derived from a user's credit score.
type CreditBadge string

const (
	CreditBadgePlatinum CreditBadge = "PLATINUM"
	CreditBadgeGold     CreditBadge = "GOLD"
	CreditBadgeSilver   CreditBadge = "SILVER"
	CreditBadgeBronze   CreditBadge = "BRONZE"
)

// DefaultCreditScore is assigned at registration.
const DefaultCreditScore = 600

// User represents a member of the lending service.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	CreditScore  int        `json:"creditScore"`
	GroupID      *uuid.UUID `json:"groupId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// Badge derives the credit badge from the current credit score.
// It is a pure derivation, never stored.
func (u *User) Badge() CreditBadge {
	switch {
	case u.CreditScore >= 750:
		return CreditBadgePlatinum
	case u.CreditScore >= 700:
		return CreditBadgeGold
	case u.CreditScore >= 650:
		return CreditBadgeSilver
	default:
		return CreditBadgeBronze
	}
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// UserProfile is the user payload returned by the API, with the
// derived badge attached.
type UserProfile struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CreditScore int         `json:"creditScore"`
	Badge       CreditBadge `json:"badge"`
	GroupID     *uuid.UUID  `json:"groupId,omitempty"`
}

// Profile builds the API payload for a user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		CreditScore: u.CreditScore,
		Badge:       u.Badge(),
		GroupID:     u.GroupID,
	}
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	SessionID    string       `json:"sessionId,omitempty"`
	User         *UserProfile `json:"user"`
}
