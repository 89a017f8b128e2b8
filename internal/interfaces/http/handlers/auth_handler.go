package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/internal/interfaces/http/response"
	"lend-circle.backend/internal/usecases"
	"lend-circle.backend/pkg/crypto"
	"lend-circle.backend/pkg/jwt"
	"lend-circle.backend/pkg/redis"
)

// SessionExpiry is how long a server-side session lives in Redis.
const SessionExpiry = 7 * 24 * time.Hour

type authService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  authService
	sessionStore *redis.SessionStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, sessionStore: sessionStore}
}

// Register creates a new user
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("Email already registered"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user.Profile(),
	})
}

// Login authenticates a user
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
			return
		}
		response.Error(c, err)
		return
	}

	if input.UseSession && h.sessionStore != nil {
		sessionID, err := crypto.GenerateSessionID()
		if err != nil {
			response.Error(c, err)
			return
		}
		data := &redis.SessionData{
			AccessToken:  auth.AccessToken,
			RefreshToken: auth.RefreshToken,
		}
		if err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, data, SessionExpiry); err != nil {
			response.Error(c, err)
			return
		}
		auth.SessionID = sessionID
	}

	response.Success(c, http.StatusOK, auth)
}

// RefreshToken issues a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("Invalid refresh token"))
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// GetMe returns the authenticated user with the derived credit badge
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Profile()})
}
