package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	acquisitionapp "github.com/openfms/backend/internal/application/acquisition"
	fundcontrolapp "github.com/openfms/backend/internal/application/fundcontrol"
	ledgerapp "github.com/openfms/backend/internal/application/ledger"
	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/infrastructure/config"
	"github.com/openfms/backend/internal/infrastructure/event"
	"github.com/openfms/backend/internal/infrastructure/logger"
	"github.com/openfms/backend/internal/infrastructure/narrative"
	"github.com/openfms/backend/internal/infrastructure/persistence"
	"github.com/openfms/backend/internal/interfaces/http/dto"
	"github.com/openfms/backend/internal/interfaces/http/handler"
	"github.com/openfms/backend/internal/interfaces/http/middleware"
	"github.com/openfms/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.NewFromAppConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting fms backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("database_driver", cfg.Database.Driver))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(200*time.Millisecond))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	fundRepo := persistence.NewGormFundTreeRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	postingStore := persistence.NewGormPostingStore(db.DB)
	prRepo := persistence.NewGormPurchaseRequestRepository(db.DB)
	solRepo := persistence.NewGormSolicitationRepository(db.DB)
	conRepo := persistence.NewGormContractRepository(db.DB)

	// Application services
	validator := &fundcontrol.Validator{AllowUnmatched: cfg.FundsControl.AllowUnmatched}
	eventBus := event.NewInMemoryEventBus(log)
	postingService := ledgerapp.NewPostingService(postingStore, txRepo, fundRepo, log)
	intakeService := ledgerapp.NewIntakeService(postingService, log)
	fundService := fundcontrolapp.NewService(fundRepo, validator, log)

	var drafter acquisitionapp.NarrativeDrafter
	if gemini, err := narrative.NewGeminiDrafter(context.Background(), cfg.Narrative, log); err != nil {
		log.Warn("narrative drafter unavailable", zap.Error(err))
	} else if gemini != nil {
		drafter = gemini
	}

	acqService := acquisitionapp.NewService(prRepo, solRepo, conRepo, fundRepo,
		validator, postingService, eventBus, drafter, log)

	// HTTP server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidations(); err != nil {
		log.Fatal("failed to register binding validations", zap.Error(err))
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
	)

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db, version)).
		Register(handler.NewFundControlHandler(fundService)).
		Register(handler.NewLedgerHandler(postingService, intakeService)).
		Register(handler.NewAcquisitionHandler(acqService)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
