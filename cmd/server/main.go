package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	fundingapp "github.com/aravind238/funding-sub001/internal/application/funding"
	invoiceapp "github.com/aravind238/funding-sub001/internal/application/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/aravind238/funding-sub001/internal/infrastructure/cache"
	"github.com/aravind238/funding-sub001/internal/infrastructure/cadence"
	"github.com/aravind238/funding-sub001/internal/infrastructure/config"
	"github.com/aravind238/funding-sub001/internal/infrastructure/logger"
	"github.com/aravind238/funding-sub001/internal/infrastructure/persistence"
	"github.com/aravind238/funding-sub001/internal/interfaces/http/handler"
	"github.com/aravind238/funding-sub001/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting funding backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs import idempotency; fall back to the in-process store
	// when it is unreachable so intake keeps working on a single node.
	var idempotency shared.IdempotencyStore
	if redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotency = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotency = redisStore
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	defer func() {
		if err := idempotency.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	cadenceClient := cadence.NewClient(cfg.Cadence, log)

	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	soaRepo := persistence.NewGormSOARepository(db.DB)
	reserveReleaseRepo := persistence.NewGormReserveReleaseRepository(db.DB)
	disbursementRepo := persistence.NewGormDisbursementRepository(db.DB)
	historyRepo := persistence.NewGormApprovalHistoryRepository(db.DB)

	validationService := invoiceapp.NewValidationService(
		invoiceRepo, clientRepo, debtorRepo, cadenceClient, cfg.Cadence.FailClosed, log)
	feeResolver := fundingapp.NewFeeResolver(settingsRepo, historyRepo, log)
	fundingService := fundingapp.NewService(
		soaRepo, reserveReleaseRepo, disbursementRepo, historyRepo, feeResolver, log)

	engine := router.New(router.Config{
		Environment:  cfg.App.Env,
		Logger:       log,
		Idempotency:  idempotency,
		MaxBodyBytes: cfg.HTTP.MaxBodySize,
	},
		handler.NewInvoiceHandler(validationService, log),
		handler.NewFundingHandler(fundingService, log),
	)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
