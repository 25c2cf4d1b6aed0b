package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/jobtracker/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/jobtracker/internal/adapter/driving/http"
	"github.com/ericfisherdev/jobtracker/internal/adapter/driving/session"
	webhandler "github.com/ericfisherdev/jobtracker/internal/adapter/driving/web"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/config"
	"github.com/ericfisherdev/jobtracker/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Load configuration and open the migrated database.
	cfg, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"strict_validation", cfg.StrictValidation,
		"secure_cookies", cfg.SecureCookies,
		"metrics_enabled", cfg.MetricsEnabled,
	)
	if cfg.GeneratedSecret {
		logger.Warn("JOBTRACKER_SESSION_SECRET is not set, using a random secret; sessions end on restart")
	}

	// 3. Wire services.
	records, stats, exporter := newRecordServices(cfg, db)
	auth := application.NewAuthService(
		sqliteadapter.NewUserRepo(db),
		sqliteadapter.NewSessionRepo(db),
		[]byte(cfg.SessionSecret),
		cfg.SessionTTL,
		application.RealClock{},
		application.UUIDGenerator{},
	)

	// 4. Seed the admin credential on first start.
	created, err := auth.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to seed admin user", "error", err)
		return err
	}
	if created {
		logger.Info("admin user created", "username", cfg.AdminUsername)
		if cfg.DefaultAdminPassword() {
			logger.Warn("admin user uses the default password; set JOBTRACKER_ADMIN_PASSWORD before first start")
		}
	}

	// 5. Register routes.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newServerHandler(cfg, records, stats, exporter, auth, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server error", "error", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newServerHandler builds the mux with API, web and metrics routes and wraps
// it with the shared middleware chain.
func newServerHandler(
	cfg *config.Config,
	records *application.RecordService,
	stats *application.StatsService,
	exporter *application.ExportService,
	auth *application.AuthService,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	apiHandler := httphandler.NewHandler(records, stats, auth, logger)
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	cookies := session.Cookies{Secure: cfg.SecureCookies}
	webHandler := webhandler.NewHandler(records, stats, exporter, auth, cookies, logger)
	webhandler.RegisterRoutes(mux, webHandler)

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return httphandler.ApplyMiddleware(mux, logger)
}
