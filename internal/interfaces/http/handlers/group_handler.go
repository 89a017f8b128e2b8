package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lend-circle.backend/internal/domain/entities"
	domainerrors "lend-circle.backend/internal/domain/errors"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/internal/interfaces/http/response"
	"lend-circle.backend/internal/usecases"
)

type groupService interface {
	CreateGroup(ctx context.Context, founderID uuid.UUID, input *entities.CreateGroupInput) (*entities.Group, error)
	JoinGroup(ctx context.Context, groupID, userID uuid.UUID) (*entities.Group, error)
	Contribute(ctx context.Context, userID uuid.UUID, input *entities.ContributeInput) (decimal.Decimal, error)
	GetMyGroup(ctx context.Context, userID uuid.UUID) (*entities.Group, error)
}

// GroupHandler handles trust-group endpoints
type GroupHandler struct {
	groupUsecase groupService
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupUsecase *usecases.GroupUsecase) *GroupHandler {
	return &GroupHandler{groupUsecase: groupUsecase}
}

// CreateGroup creates a trust group with the caller as founder
// POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var input entities.CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	group, err := h.groupUsecase.CreateGroup(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Group created",
		"group":   group.Info(),
	})
}

// JoinGroup adds the caller to a group
// POST /api/v1/groups/:id/join
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid group ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	group, err := h.groupUsecase.JoinGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Group not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Joined group",
		"group":   group.Info(),
	})
}

// Contribute adds to the caller's group insurance pool
// POST /api/v1/groups/contribute
func (h *GroupHandler) Contribute(c *gin.Context) {
	var input entities.ContributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	balance, err := h.groupUsecase.Contribute(c.Request.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrValidation):
			response.Error(c, domainerrors.BadRequest(err.Error()))
		case errors.Is(err, domainerrors.ErrNotInGroup):
			response.Error(c, domainerrors.BadRequest("Join a group before contributing"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":       "Contribution received",
		"insurancePool": balance,
	})
}

// GetMyGroup returns the caller's group info
// GET /api/v1/groups/me
func (h *GroupHandler) GetMyGroup(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	group, err := h.groupUsecase.GetMyGroup(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotInGroup):
			response.Error(c, domainerrors.NotFound("You are not in a group"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("Group not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"group": group.Info()})
}
