package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carebridge/carebridge/internal/config"
	"github.com/carebridge/carebridge/internal/domain/assignment"
	"github.com/carebridge/carebridge/internal/domain/audit"
	"github.com/carebridge/carebridge/internal/domain/caregiver"
	"github.com/carebridge/carebridge/internal/domain/notification"
	"github.com/carebridge/carebridge/internal/domain/patient"
	"github.com/carebridge/carebridge/internal/domain/review"
	"github.com/carebridge/carebridge/internal/platform/auth"
	"github.com/carebridge/carebridge/internal/platform/db"
	"github.com/carebridge/carebridge/internal/platform/middleware"
)

func main() {
	root := &cobra.Command{
		Use:   "carebridge-server",
		Short: "Assignment and review workflow service",
	}

	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// Repositories
	caregiverRepo := caregiver.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	assignmentRepo := assignment.NewRepoPG(pool)
	reviewRepo := review.NewRepoPG(pool)
	notificationRepo := notification.NewRepoPG(pool)
	auditRepo := audit.NewRepoPG(pool)

	// Services
	caregiverSvc := caregiver.NewService(caregiverRepo)
	patientSvc := patient.NewService(patientRepo)
	auditSvc := audit.NewService(auditRepo, logger)
	notificationSvc := notification.NewService(notificationRepo, logger)
	assignmentSvc := assignment.NewService(assignmentRepo, patientRepo, caregiverRepo, notificationSvc, auditSvc, logger)
	reviewSvc := review.NewService(reviewRepo, patientRepo, caregiverRepo, notificationSvc, auditSvc, logger)

	// Background cleanup of the notification inbox.
	go runNotificationSweeper(ctx, notificationSvc, auditSvc, logger,
		time.Duration(cfg.NotificationSweepMins)*time.Minute,
		time.Duration(cfg.NotificationMaxAgeDays)*24*time.Hour)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("running with development auth, every request is admin")
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.JWTSecret),
		}))
	}

	caregiver.NewHandler(caregiverSvc).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	assignment.NewHandler(assignmentSvc).RegisterRoutes(api)
	review.NewHandler(reviewSvc).RegisterRoutes(api)
	notification.NewHandler(notificationSvc).RegisterRoutes(api)
	audit.NewHandler(auditSvc).RegisterRoutes(api)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// runNotificationSweeper deletes read-and-aged or expired notifications on
// an interval, journaling each sweep that removed anything.
func runNotificationSweeper(ctx context.Context, notifications *notification.Service, auditor *audit.Service, logger zerolog.Logger, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := notifications.Cleanup(ctx, maxAge)
			if err != nil {
				logger.Warn().Err(err).Msg("notification cleanup failed")
				continue
			}
			if removed > 0 {
				logger.Info().Int("removed", removed).Msg("notification cleanup")
				auditor.Record(ctx, uuid.Nil, audit.ActionCleanupSweep, "notification", uuid.Nil,
					map[string]interface{}{"removed": removed})
			}
		}
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	var dir string
	migrate.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	withMigrator := func(fn func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			pool, err := db.NewPool(ctx, cfg.DatabaseURL, 2, 1)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			return fn(ctx, db.NewMigrator(pool, dir), logger)
		}
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			n, err := m.Up(ctx)
			if err != nil {
				return err
			}
			logger.Info().Int("applied", n).Msg("migrations complete")
			return nil
		}),
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%04d  %-9s %s\n", s.Version, state, s.Name)
			}
			return nil
		}),
	})

	return migrate
}
