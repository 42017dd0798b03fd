package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/studyplan/internal/api/handler"
	"github.com/alexanderramin/studyplan/internal/api/router"
	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				c.Config.Server.Port = port
			}
			if err := c.Config.ValidateServer(); err != nil {
				return err
			}
			if c.Tokens == nil {
				return fmt.Errorf("auth.jwt_secret is not usable")
			}
			return serve(cmd.Context(), c)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Listen port (overrides server.port)")
	return cmd
}

// newEngine wires the HTTP handlers over the container's services.
func newEngine(c *app.Container) *gin.Engine {
	h := handler.NewHandler(handler.Services{
		Subjects:     c.Subjects,
		Availability: c.Availability,
		Settings:     c.Settings,
		Planner:      c.Planner,
		Sessions:     c.Sessions,
		Dashboard:    c.Dashboard,
		Tutor:        c.Tutor,
		Sync:         c.Sync,
		Connector:    c.Connector,
	}, handler.Env{
		Location: c.Location,
		Now:      c.Now,
		Export:   c.Config.ExportOptions(),
		Logger:   c.Logger,
	})
	return router.Setup(h, c.Tokens, c.Logger)
}

func serve(ctx context.Context, c *app.Container) error {
	gin.SetMode(gin.ReleaseMode)
	logger := c.Logger

	// Generation requests hold the connection for the full oracle call.
	llmTimeout := time.Duration(c.Config.LLM.TimeoutMs) * time.Millisecond
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", c.Config.Server.Port),
		Handler:      newEngine(c),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: llmTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Bool("calendar", c.Sync != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
