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

	"github.com/examprep/backend/internal/api"
	"github.com/examprep/backend/internal/infrastructure/config"
	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"

	_ "github.com/examprep/backend/docs" // swagger docs
)

// @title           Exam statistics API
// @version         1.0
// @description     Subject configurations, answer log and per-user answer statistics.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := store.Open(openCtx, cfg.DBDriver, cfg.DBDSN)
	cancelOpen()
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	statsSvc := service.NewStatsService(db, logger, cfg.SummaryWorkers, stats.Options{
		MaxConcurrentFetches: cfg.FetchConcurrency,
	})
	handler := api.NewHandler(db, statsSvc, logger)

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

	logger.Info("starting server", "address", cfg.ServerAddress, "driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
