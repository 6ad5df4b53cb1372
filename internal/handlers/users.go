package handlers

import (
	"net/http"

	"github.com/fidomax07/vetting-api/internal/constants"
	"github.com/fidomax07/vetting-api/internal/dto"
	"github.com/fidomax07/vetting-api/internal/middleware"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the leaderboard, public profiles and likes.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Home returns the API banner.
func (h *UserHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageDTO{Message: constants.MessageHome})
}

// MostLiked returns every user ordered by received likes.
func (h *UserHandler) MostLiked(c *gin.Context) {
	accounts, err := h.userService.GetOrderedByLikes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTOs(accounts)})
}

// Show returns a user's username and received-like count.
func (h *UserHandler) Show(c *gin.Context) {
	account, err := h.userService.FindWithLikesCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserSummaryDTO(account)})
}

// Like makes the authenticated user like :id.
func (h *UserHandler) Like(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		_ = c.Error(services.ErrUnauthenticated)
		return
	}

	if err := h.userService.Like(c.Request.Context(), account, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(account)})
}

// Unlike removes the authenticated user's like of :id.
func (h *UserHandler) Unlike(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		_ = c.Error(services.ErrUnauthenticated)
		return
	}

	if err := h.userService.Unlike(c.Request.Context(), account, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(account)})
}
