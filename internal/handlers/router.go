package handlers

import (
	"github.com/fidomax07/vetting-api/internal/logging"
	"github.com/fidomax07/vetting-api/internal/middleware"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterDeps holds everything the HTTP layer needs.
type RouterDeps struct {
	UserService *services.UserService
	Guard       *services.AuthGuard
	Logger      *logrus.Logger
	Development bool
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Logger, deps.Development),
		logging.RequestLogger(deps.Logger),
		middleware.ErrorHandler(deps.Logger, deps.Development),
	)

	authHandler := NewAuthHandler(deps.UserService)
	userHandler := NewUserHandler(deps.UserService)
	requireAuth := middleware.RequireAuth(deps.Guard)

	r.GET("/", userHandler.Home)
	r.GET("/most-liked", userHandler.MostLiked)

	// Auth routes (public)
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	// Session routes (protected)
	r.POST("/logout", requireAuth, authHandler.Logout)
	me := r.Group("/me")
	me.Use(requireAuth)
	{
		me.GET("", authHandler.Profile)
		me.PUT("/update-password", authHandler.UpdatePassword)
	}

	users := r.Group("/user")
	{
		users.GET("/:id", userHandler.Show)
		users.POST("/:id/like", requireAuth, userHandler.Like)
		users.POST("/:id/unlike", requireAuth, userHandler.Unlike)
	}

	r.NoRoute(middleware.NoRoute)

	return r
}
