package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/safar/pantry-pickup/internal/auth"
	"github.com/safar/pantry-pickup/internal/config"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/handlers"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/internal/metrics"
	"github.com/safar/pantry-pickup/internal/service"
)

// pantry serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.Log)
		slog.SetDefault(log)

		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		log.Info("connected to database")

		router, err := buildRouter(cfg, db, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg.Server, router, log)
	},
}

// pantry routes
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the registered HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)
		cfg := &config.Config{
			Auth:   config.AuthConfig{JWTSecret: "routes", BcryptCost: bcrypt.MinCost},
			Orders: config.OrdersConfig{MaxPageSize: 1},
		}
		router, err := buildRouter(cfg, nil, logger.Discard())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, r := range router.Routes() {
			fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
		}
		return w.Flush()
	},
}

func buildRouter(cfg *config.Config, db *sql.DB, log *slog.Logger) (*gin.Engine, error) {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	m := metrics.New()
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	accounts, err := service.NewAccountService(db, hasher, m)
	if err != nil {
		return nil, err
	}
	notifications := service.NewNotificationService(db)
	orders := service.NewOrderService(db, notifications, m, cfg.Orders)

	return handlers.NewRouter(handlers.Config{
		Accounts:      accounts,
		Orders:        orders,
		Notifications: notifications,
		Tokens:        tokens,
		Metrics:       m,
		Logger:        log,
		DB:            db,
	}), nil
}

func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, log *slog.Logger) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
