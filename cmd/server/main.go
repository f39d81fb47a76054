package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/comercia/backend/internal/application/finance"
	partnerapp "github.com/comercia/backend/internal/application/partner"
	purchasingapp "github.com/comercia/backend/internal/application/purchasing"
	treasuryapp "github.com/comercia/backend/internal/application/treasury"
	"github.com/comercia/backend/internal/infrastructure/auth"
	"github.com/comercia/backend/internal/infrastructure/config"
	"github.com/comercia/backend/internal/infrastructure/event"
	"github.com/comercia/backend/internal/infrastructure/logger"
	"github.com/comercia/backend/internal/infrastructure/persistence"
	"github.com/comercia/backend/internal/infrastructure/telemetry"
	"github.com/comercia/backend/internal/interfaces/http/handler"
	"github.com/comercia/backend/internal/interfaces/http/middleware"
	"github.com/comercia/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Comercia backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.DBName = cfg.Database.DBName
		if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormPurchaseInvoiceRepository(db.DB)
	paymentOrderRepo := persistence.NewGormPaymentOrderRepository(db.DB)
	applicationRepo := persistence.NewGormCreditNoteApplicationRepository(db.DB)
	receivingNoteRepo := persistence.NewGormReceivingNoteRepository(db.DB)

	purchasingScope := persistence.NewGormPurchasingTransactionScope(db.DB)
	treasuryScope := persistence.NewGormTreasuryTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	supplierService := partnerapp.NewSupplierService(supplierRepo, invoiceRepo, receivingNoteRepo)
	invoiceService := purchasingapp.NewInvoiceService(purchasingScope)
	invoiceService.SetEventPublisher(eventBus)
	paymentOrderService := purchasingapp.NewPaymentOrderService(purchasingScope)
	paymentOrderService.SetEventPublisher(eventBus)
	receivingNoteService := purchasingapp.NewReceivingNoteService(purchasingScope)
	receivingNoteService.SetEventPublisher(eventBus)
	balanceService := financeapp.NewSupplierBalanceService(supplierRepo, invoiceRepo, paymentOrderRepo, applicationRepo)
	bankAccountService := treasuryapp.NewBankAccountService(treasuryScope)
	bankImportService := treasuryapp.NewBankImportService(treasuryScope)
	checkService := treasuryapp.NewCheckService(treasuryScope)
	checkService.SetEventPublisher(eventBus)
	cashSessionService := treasuryapp.NewCashSessionService(treasuryScope)
	cashSessionService.SetEventPublisher(eventBus)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.JWTAuthMiddleware(jwtService))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	supplierHandler := handler.NewSupplierHandler(supplierService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentOrderHandler := handler.NewPaymentOrderHandler(paymentOrderService)
	receivingNoteHandler := handler.NewReceivingNoteHandler(receivingNoteService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountService, bankImportService)
	checkHandler := handler.NewCheckHandler(checkService)
	cashSessionHandler := handler.NewCashSessionHandler(cashSessionService)

	r.Register(&router.PartnerRoutes{
		Suppliers: supplierHandler,
		Balances:  balanceHandler,
		Invoices:  invoiceHandler,
	})
	r.Register(&router.PurchasingRoutes{
		Invoices:       invoiceHandler,
		PaymentOrders:  paymentOrderHandler,
		ReceivingNotes: receivingNoteHandler,
		Balances:       balanceHandler,
	})
	r.Register(&router.TreasuryRoutes{
		BankAccounts: bankAccountHandler,
		Checks:       checkHandler,
		CashSessions: cashSessionHandler,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
