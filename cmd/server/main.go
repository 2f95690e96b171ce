package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	certapp "github.com/edustack/backend/internal/application/certificate"
	commerceapp "github.com/edustack/backend/internal/application/commerce"
	subscriptionapp "github.com/edustack/backend/internal/application/subscription"
	webhookapp "github.com/edustack/backend/internal/application/webhook"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/cache"
	"github.com/edustack/backend/internal/infrastructure/config"
	"github.com/edustack/backend/internal/infrastructure/event"
	"github.com/edustack/backend/internal/infrastructure/logger"
	"github.com/edustack/backend/internal/infrastructure/notification"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"github.com/edustack/backend/internal/infrastructure/persistence"
	"github.com/edustack/backend/internal/interfaces/http/handler"
	"github.com/edustack/backend/internal/interfaces/http/middleware"
	"github.com/edustack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting EduStack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	fulfillmentRepo := persistence.NewGormFulfillmentRepository(db.DB, webhookapp.Provider)
	courseRepo := persistence.NewGormCourseRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	certificateRepo := persistence.NewGormCertificateRepository(db.DB)
	webhookLedger := persistence.NewGormWebhookLedger(db.DB)
	holderDirectory := persistence.NewGormHolderDirectory(db.DB)

	// Payment gateway
	gateway, err := payment.NewPayPalGateway(&cfg.PayPal, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Notifications and events
	mailer := notification.NewLogMailer(cfg.Mail, log)
	eventBus := event.NewInMemoryEventBus(log)

	// Advisory duplicate filter in front of the webhook ledger
	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		idempotencyStore = cache.NewIdempotencyStore(cfg, log)
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	// Application services
	fulfillmentService := commerceapp.NewFulfillmentService(commerceapp.FulfillmentServiceConfig{
		Fulfillments: fulfillmentRepo,
		Purchases:    purchaseRepo,
		Courses:      courseRepo,
		EventBus:     eventBus,
		Mailer:       mailer,
		Logger:       log,
	})
	checkoutService := commerceapp.NewCheckoutService(commerceapp.CheckoutServiceConfig{
		Purchases:   purchaseRepo,
		Courses:     courseRepo,
		Coupons:     couponRepo,
		Gateway:     gateway,
		Fulfillment: fulfillmentService,
		Logger:      log,
	})
	lifecycleService := subscriptionapp.NewLifecycleService(subscriptionapp.LifecycleServiceConfig{
		Subscriptions: subscriptionRepo,
		Plans:         planRepo,
		ActivityLog:   activityLogRepo,
		Gateway:       gateway,
		Mailer:        mailer,
		Logger:        log,
	})
	issuerService := certapp.NewIssuerService(certapp.IssuerServiceConfig{
		Certificates: certificateRepo,
		Courses:      courseRepo,
		Completion:   certapp.NewCourseCompletionOracle(courseRepo, progressRepo),
		Entitlement:  certapp.NewStoredEntitlementOracle(purchaseRepo, enrollmentRepo, subscriptionRepo, planRepo),
		Holders:      holderDirectory,
		Mailer:       mailer,
		LockTTL:      cfg.Certificate.LockTTL,
		ReleaseDelay: cfg.Certificate.ReleaseDelay,
		Coalescing:   true,
		Logger:       log,
	})
	verificationService := certapp.NewVerificationService(certificateRepo)

	ingestor := webhookapp.NewIngestor(webhookapp.IngestorConfig{
		Gateway:     gateway,
		Ledger:      webhookLedger,
		FastPath:    idempotencyStore,
		FastPathTTL: cfg.Idempotency.TTL,
		Fulfillment: fulfillmentService,
		Checkout:    checkoutService,
		Lifecycle:   lifecycleService,
		Logger:      log,
	})

	// HTTP handlers
	webhookHandler := handler.NewPayPalWebhookHandler(ingestor)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	certificateHandler := handler.NewCertificateHandler(issuerService, verificationService)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", healthHandler(db, log))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(webhookHandler).
		Register(checkoutHandler).
		Register(certificateHandler).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// healthHandler reports process and database liveness
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
