package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/estate-hub/estate-hub/internal/api/http"
	"github.com/estate-hub/estate-hub/internal/application/agreement"
	"github.com/estate-hub/estate-hub/internal/application/auth"
	"github.com/estate-hub/estate-hub/internal/application/ledger"
	"github.com/estate-hub/estate-hub/internal/application/notification"
	"github.com/estate-hub/estate-hub/internal/application/property"
	"github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/infrastructure/postgres"
	"github.com/estate-hub/estate-hub/internal/infrastructure/sse"
)

func serveCmd() *cobra.Command {
	var skipMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on startup")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runServe(cmd *cobra.Command, skipMigrate bool) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer pool.Close()

	if !skipMigrate {
		if _, err := postgres.RunMigrations(ctx, pool, migrationSource(cfg), logger); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
	}

	// repositories
	txManager := postgres.NewTxManager(pool, logger)
	propertyRepo := postgres.NewPropertyRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	// infrastructure
	sseHub := sse.NewHub(logger)
	sseHub.Start(ctx)

	// services
	propertyLedger := ledger.New(logger)
	dispatcher := notification.NewDispatcher(sseHub, logger)
	authSvc := auth.NewService(profileRepo, sessionRepo, cfg.SessionTTL, logger)
	agreementSvc := agreement.NewService(txManager, propertyLedger, logger)
	saleSvc := sale.NewService(txManager, propertyLedger, dispatcher, logger)
	propertySvc := property.NewService(propertyRepo, logger)

	apiServer := httpapi.NewServer(httpapi.Options{
		AuthService:         authSvc,
		AgreementService:    agreementSvc,
		SaleService:         saleSvc,
		PropertyService:     propertySvc,
		SSEHub:              sseHub,
		Logger:              logger,
		SessionCookieName:   cfg.SessionCookieName,
		SessionCookieSecure: cfg.SessionCookieSecure,
	})

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// background loops
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := authSvc.PurgeExpired(ctx); err != nil {
					logger.Warn().Err(err).Msg("session purge failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	// graceful shutdown
	logger.Info().Msg("shutting down")
	sseHub.Stop()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	return httpServer.Shutdown(ctxShutdown)
}
