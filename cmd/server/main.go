package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/factdojo/backend/internal/api"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/grader"
	"github.com/factdojo/backend/internal/infrastructure/config"
	"github.com/factdojo/backend/internal/service"
	"github.com/factdojo/backend/internal/store"

	_ "github.com/factdojo/backend/docs" // generated swagger docs
)

// @title           Fact Dojo API
// @version         1.0
// @description     Multiplication fact practice: per-fact mastery tracking, weak-first session planning and progress reports.

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	policy := cfg.Policy()
	updater, err := scoring.NewUpdater(policy)
	if err != nil {
		logger.Error("invalid scoring policy", "error", err)
		os.Exit(1)
	}

	practiceSvc := service.NewPracticeService(db, updater, grader.NewArithmetic(policy), logger).
		WithSessionSize(cfg.SessionSize)
	dashboardSvc := service.NewDashboardService(db, cfg.DashboardWorkers, logger)
	handler := api.NewHandler(practiceSvc, dashboardSvc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"database", cfg.DatabasePath,
		"session_size", cfg.SessionSize,
		"fast_threshold", policy.FastThreshold.String(),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
