package handlers

import (
	"net/http"
	"strconv"

	"github.com/fidomax07/vetting-api/internal/constants"
	"github.com/fidomax07/vetting-api/internal/dto"
	"github.com/fidomax07/vetting-api/internal/middleware"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/fidomax07/vetting-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Signup registers a new user and opens a session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.RegisterInput
	if err := validation.DecodeJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	account, token, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.AuthDTO{
		User:  dto.ToUserDTO(account),
		Token: token,
	}})
}

// Login authenticates a user and appends a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := validation.DecodeJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	account, token, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthDTO{
		User:  dto.ToUserDTO(account),
		Token: token,
	}})
}

// Logout invalidates the current token, or every token with ?all_devices=true.
func (h *AuthHandler) Logout(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		_ = c.Error(services.ErrUnauthenticated)
		return
	}

	allDevices, _ := strconv.ParseBool(c.Query(constants.AllDevicesQuery))
	if err := h.userService.Logout(c.Request.Context(), account, middleware.GetToken(c), allDevices); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.MessageDTO{Message: constants.MessageLoggedOut}})
}

// Profile returns the authenticated user with likes and liked.
func (h *AuthHandler) Profile(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		_ = c.Error(services.ErrUnauthenticated)
		return
	}

	if err := h.userService.LoadDependencies(c.Request.Context(), account); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(account)})
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		_ = c.Error(services.ErrUnauthenticated)
		return
	}

	var req services.PasswordUpdateInput
	if err := validation.DecodeJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.userService.HandlePasswordUpdate(c.Request.Context(), account, req); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(account)})
}
