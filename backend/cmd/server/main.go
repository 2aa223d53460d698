package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"social-demo/backend/internal/api"
	"social-demo/backend/internal/social"
	"social-demo/backend/pkg/config"
	"social-demo/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	// All state lives in memory for the lifetime of the process
	svc, err := social.NewService(social.Options{
		UploadDir:            cfg.UploadDir,
		ProfilePictureDir:    cfg.ProfilePictureDir(),
		ProfilePictureSubdir: cfg.ProfilePictureSubdir,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize social service", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(svc, api.RouterConfig{
		StaticDir:       cfg.StaticDir,
		UploadDir:       cfg.UploadDir,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		MaxUploadBytes:  cfg.MaxUploadBytes(),
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, router, log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Server exited")
}

// run serves until ctx is cancelled, then shuts the server down gracefully
func run(ctx context.Context, cfg *config.Config, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
