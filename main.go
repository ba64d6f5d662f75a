package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "github.com/dokonbot/dokonbot/internal/application/catalog"
	appconv "github.com/dokonbot/dokonbot/internal/application/conversation"
	appidentity "github.com/dokonbot/dokonbot/internal/application/identity"
	appledger "github.com/dokonbot/dokonbot/internal/application/ledger"
	"github.com/dokonbot/dokonbot/internal/config"
	domcatalog "github.com/dokonbot/dokonbot/internal/domain/catalog"
	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/export"
	httptransport "github.com/dokonbot/dokonbot/internal/infrastructure/http"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/infrastructure/memory"
	"github.com/dokonbot/dokonbot/internal/infrastructure/observability/oteltrace"
	"github.com/dokonbot/dokonbot/internal/infrastructure/observability/prometrics"
	"github.com/dokonbot/dokonbot/internal/infrastructure/outbox"
	"github.com/dokonbot/dokonbot/internal/infrastructure/sqlite"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.MustNew(cfg.Service, cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	var (
		productRepo    domcatalog.Repository
		sellerRepo     domseller.Repository
		assignmentRepo domledger.Repository
	)
	if cfg.DatabaseDSN != "" {
		store, err := sqlite.Open(cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("sqlite_open_failed", zap.Error(err))
		}
		defer store.Close()
		productRepo = store.Products()
		sellerRepo = store.Sellers()
		assignmentRepo = store.Assignments()
		logger.Info("storage_ready", zap.String("mode", "sqlite"))
	} else {
		productRepo = memory.NewProductRepository()
		sellerRepo = memory.NewSellerRepository()
		assignmentRepo = memory.NewAssignmentRepository()
		logger.Info("storage_ready", zap.String("mode", "memory"))
	}

	metrics := prometrics.New(cfg.Service, "")
	dispatches := metrics.Counter("engine_dispatches_total",
		"Total engine dispatches by workflow and outcome.", "workflow", "outcome")
	durations := metrics.Histogram("engine_dispatch_duration_seconds",
		"Duration of engine step handling in seconds.", nil, "workflow")
	exportFailures := metrics.Counter("export_failures_total",
		"Count of failed ledger export appends.")

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	idGen := id.NewUUIDGenerator()
	catalogSvc := appcatalog.NewService(productRepo, idGen)
	identitySvc := appidentity.NewService(sellerRepo, idGen, cfg.AdminActorID)
	ledgerSvc := appledger.NewService(assignmentRepo, productRepo, sellerRepo, idGen, bus)

	engine := appconv.NewEngine(
		identitySvc, catalogSvc, ledgerSvc,
		cfg.SessionIdleTTL,
		logger,
		oteltrace.New(cfg.Service),
		appconv.Metrics{Dispatches: dispatches, Durations: durations},
	)

	var exporter export.Exporter
	switch {
	case cfg.Export.WebhookURL != "":
		exporter = export.NewWebhookExporter(cfg.Export.WebhookURL, logger)
	case cfg.Export.CSVPath != "":
		exporter = export.NewCSVExporter(cfg.Export.CSVPath, logger)
	default:
		// Log-only degradation when no target is configured.
		exporter = export.NewWebhookExporter("", logger)
	}
	exportWorker := export.NewWorker(bus, exporter, exportFailures)
	exportWorker.Start()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	gateway := httptransport.NewGateway(identitySvc, catalogSvc, ledgerSvc, engine, logger)
	gateway.Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: e,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}
