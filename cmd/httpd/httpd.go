// Package httpd implements the status HTTP server. It exposes health and
// batch endpoints over the same Elasticsearch indices the crawler writes.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	"github.com/jonesrussell/newspipe/internal/storage"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Command returns the httpd command for use in the root command.
func Command(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Run the status HTTP server",
		Long:  `Serve health checks and batch status over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := getDeps()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := common.CreateStorage(ctx, deps.Config, deps.Logger)
			if err != nil {
				return err
			}

			return run(ctx, deps, store)
		},
	}
}

// run serves until the context is cancelled, then shuts down gracefully.
func run(ctx context.Context, deps common.CommandDeps, store *storage.Storage) error {
	if deps.Config.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, store)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Server.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		deps.Logger.Info("Shutdown signal received, stopping HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// registerRoutes wires the handlers.
func registerRoutes(router *gin.Engine, store *storage.Storage) {
	router.GET("/healthz", func(c *gin.Context) {
		if err := store.TestConnection(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/batches/latest", func(c *gin.Context) {
		summary, err := store.LatestBatch(c.Request.Context())
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no batches recorded"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	})
}
