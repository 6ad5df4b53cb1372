package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fidomax07/vetting-api/internal/auth"
	"github.com/fidomax07/vetting-api/internal/config"
	"github.com/fidomax07/vetting-api/internal/database"
	"github.com/fidomax07/vetting-api/internal/handlers"
	"github.com/fidomax07/vetting-api/internal/logging"
	"github.com/fidomax07/vetting-api/internal/repository"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/fidomax07/vetting-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.App.Env, os.Stdout)
	gin.SetMode(cfg.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		closeDB(db, logger)
		logger.Fatalf("migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	signer := auth.NewJWTSigner(cfg.JWT.Secret, cfg.JWT.TTL)

	userService, err := services.NewUserService(userRepo, likeRepo, auth.NewBcryptHasher(cfg.Bcrypt.Cost), signer, validation.New())
	if err != nil {
		closeDB(db, logger)
		logger.Fatalf("init user service: %v", err)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		UserService: userService,
		Guard:       services.NewAuthGuard(userRepo, signer, userService),
		Logger:      logger,
		Development: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-serveErr:
		logger.WithError(err).Error("http server failed")
		closeDB(db, logger)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	closeDB(db, logger)

	logger.Info("bye")
}

func closeDB(db *gorm.DB, logger *logrus.Logger) {
	if err := database.Close(db); err != nil {
		logger.Warnf("close database: %v", err)
	}
}
