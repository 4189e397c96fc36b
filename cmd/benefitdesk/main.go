package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"benefitdesk/internal/config"
	"benefitdesk/internal/database"
	"benefitdesk/internal/handler"
	"benefitdesk/internal/service"
	"benefitdesk/internal/store"
	"benefitdesk/internal/worker"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db, cfg.DatabaseURI); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	st := store.New(db)

	// Services
	importSvc := service.NewImportService(st)
	resolverSvc := service.NewResolverService(st)
	ledgerSvc := service.NewLedgerService(st)

	// Seed the store from the master files. A missing file is not fatal:
	// the refresh worker picks it up once it appears.
	if report, err := importSvc.ImportFiles(context.Background(), cfg.CustomerFile, cfg.BenefitFile); err != nil {
		slog.Warn("initial master data import failed", "error", err)
	} else {
		slog.Info("master data imported",
			"customers_inserted", report.Customers.Inserted,
			"benefits_inserted", report.Benefits.Inserted)
	}

	// Worker
	refreshWorker := worker.NewRefreshWorker(importSvc, cfg.CustomerFile, cfg.BenefitFile, cfg.RefreshInterval)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handler.HealthHandler(db))

	r.Post("/api/customers/check", handler.CheckCustomerHandler(resolverSvc))
	r.Get("/api/benefits", handler.ListBenefitsHandler(resolverSvc))
	r.Get("/api/benefits/{code}", handler.GetBenefitHandler(resolverSvc))
	r.Post("/api/claims", handler.RecordClaimHandler(ledgerSvc))
	r.Get("/api/claims", handler.ListClaimsHandler(ledgerSvc))
	r.Delete("/api/claims/{id}", handler.DeleteClaimHandler(ledgerSvc))
	r.Post("/api/admin/import", handler.ImportHandler(importSvc, cfg.CustomerFile, cfg.BenefitFile))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go refreshWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
