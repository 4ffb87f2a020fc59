package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/config"
	"github.com/rrinox/orcamentos/internal/repository/mongodb"
	"github.com/rrinox/orcamentos/internal/repository/sheets"
	"github.com/rrinox/orcamentos/internal/scheduler"
	"github.com/rrinox/orcamentos/internal/server/handlers"
	"github.com/rrinox/orcamentos/internal/server/router"
	catalogsvc "github.com/rrinox/orcamentos/internal/service/catalog"
	draftsvc "github.com/rrinox/orcamentos/internal/service/drafts"
	notifysvc "github.com/rrinox/orcamentos/internal/service/notify"
	quotationsvc "github.com/rrinox/orcamentos/internal/service/quotations"
	whatsappclient "github.com/rrinox/orcamentos/pkg/clients/whatsapp"
	"github.com/rrinox/orcamentos/pkg/logger"
	"github.com/rrinox/orcamentos/pkg/pdf"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewRepository(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	catalogSvc := catalogsvc.NewService(sheetsRepo, baseLogger.Named("svc.catalog"))
	draftSvc := draftsvc.NewService(mongoRepo, catalogSvc, baseLogger.Named("svc.drafts"))

	var notifier *notifysvc.Service
	if cfg.NotificationsEnabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		notifier = notifysvc.NewService(whatsClient, cfg.WhatsApp.RecipientID, baseLogger.Named("svc.notify"))
		baseLogger.Info("whatsapp notifications enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, notifications disabled")
	}

	renderer := pdf.NewRenderer(pdf.Company{
		Name:    cfg.Company.Name,
		TaxID:   cfg.Company.TaxID,
		Address: cfg.Company.Address,
	})

	store := quotationsvc.NewStore(sheetsRepo, baseLogger.Named("store.quotations"))

	var lifecycleNotifier quotationsvc.Notifier
	if notifier != nil {
		lifecycleNotifier = notifier
	}
	quotationSvc := quotationsvc.NewService(store, mongoRepo, renderer, lifecycleNotifier, baseLogger.Named("svc.quotations"))

	quotationHandler := handlers.NewQuotationHandler(quotationSvc, draftSvc, baseLogger.Named("handlers.quotations"))
	draftHandler := handlers.NewDraftHandler(draftSvc, baseLogger.Named("handlers.drafts"))
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog"))
	engine := router.New(quotationHandler, draftHandler, catalogHandler, baseLogger.Named("router"))

	if notifier != nil {
		sched := scheduler.NewScheduler(cfg.Summary.CronSchedule, quotationSvc, notifier, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
