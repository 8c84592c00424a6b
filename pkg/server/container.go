package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sample-echo-api/internal/config"
	"sample-echo-api/internal/handlers"
	"sample-echo-api/internal/logging"
)

// Container holds the application: its configuration, logger and router.
// It is built once per process and is read-only afterwards.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Router *gin.Engine
}

// NewContainer creates the application from configuration
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger creates the application with a prepared logger
func NewContainerWithLogger(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Environment {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		Router: handlers.NewRouter(cfg, logger),
	}, nil
}

// Handler returns the HTTP handler serving all routes
func (c *Container) Handler() http.Handler {
	return c.Router
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (c *Container) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              c.Config.Addr(),
		Handler:           c.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	c.Logger.WithFields(logrus.Fields{
		"addr":        srv.Addr,
		"environment": c.Config.Environment,
		"mode":        gin.Mode(),
	}).Info("Server started")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	c.Logger.Info("Server exited")
	return nil
}
