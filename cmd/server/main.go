package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/config"
	"github.com/mamadbah2/brewhouse/internal/events"
	"github.com/mamadbah2/brewhouse/internal/repository"
	"github.com/mamadbah2/brewhouse/internal/repository/memory"
	"github.com/mamadbah2/brewhouse/internal/repository/mongodb"
	"github.com/mamadbah2/brewhouse/internal/repository/sheets"
	"github.com/mamadbah2/brewhouse/internal/scheduler"
	"github.com/mamadbah2/brewhouse/internal/server/handlers"
	"github.com/mamadbah2/brewhouse/internal/server/router"
	alarmsvc "github.com/mamadbah2/brewhouse/internal/service/alarms"
	inventorysvc "github.com/mamadbah2/brewhouse/internal/service/inventory"
	notifysvc "github.com/mamadbah2/brewhouse/internal/service/notify"
	schedulingsvc "github.com/mamadbah2/brewhouse/internal/service/scheduling"
	"github.com/mamadbah2/brewhouse/pkg/clients/webhook"
	"github.com/mamadbah2/brewhouse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	var productionLog schedulingsvc.ProductionLog
	if cfg.Sheets.Enabled() {
		sheet, err := sheets.NewProductionSheet(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to open production sheet", zap.Error(err))
		}
		productionLog = sheets.NewProductionLog(sheet)
		baseLogger.Info("production log export enabled", zap.String("range", sheet.Range()))
	}

	broker := events.NewBroker(cfg.Stream.ClientBuffer, baseLogger.Named("events"))

	schedulingSvc := schedulingsvc.NewService(store, store, store, productionLog, baseLogger.Named("svc.scheduling"))
	inventorySvc := inventorysvc.NewService(store, store, store, baseLogger.Named("svc.inventory"))
	alarmSvc := alarmsvc.NewService(store, store, baseLogger.Named("svc.alarms"))
	evaluator := alarmsvc.NewEvaluator(store, store, store, broker, baseLogger.Named("svc.evaluator"))

	if cfg.Webhook.Enabled() {
		notifier := notifysvc.NewNotifier(broker, webhook.NewClient(cfg.Webhook), baseLogger.Named("svc.notify"))
		go notifier.Run(ctx)
	} else {
		baseLogger.Info("ALARM_WEBHOOK_URL not set, alarm notifications disabled")
	}

	engine := router.New(router.Handlers{
		Schedules: handlers.NewScheduleHandler(schedulingSvc, baseLogger.Named("handlers.schedules")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Alarms:    handlers.NewAlarmHandler(alarmSvc, baseLogger.Named("handlers.alarms")),
		Stream:    handlers.NewStreamHandler(broker, cfg.Stream.HeartbeatInterval, baseLogger.Named("handlers.stream")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(evaluator, cfg.Alarms.PollInterval, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: /events responses stay open
		IdleTimeout: 60 * time.Second,
		// streams end when the signal context is cancelled
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
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

func openStore(ctx context.Context, cfg *config.Config, baseLogger *zap.Logger) (repository.Store, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		baseLogger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return mongodb.NewRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
}
