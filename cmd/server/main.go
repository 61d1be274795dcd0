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

	catalogapp "github.com/panel/backend/internal/application/catalog"
	fulfillmentapp "github.com/panel/backend/internal/application/fulfillment"
	"github.com/panel/backend/internal/infrastructure/activity"
	"github.com/panel/backend/internal/infrastructure/carrier"
	"github.com/panel/backend/internal/infrastructure/config"
	"github.com/panel/backend/internal/infrastructure/contentstore"
	"github.com/panel/backend/internal/infrastructure/logger"
	"github.com/panel/backend/internal/infrastructure/orders"
	"github.com/panel/backend/internal/interfaces/http/handler"
	"github.com/panel/backend/internal/interfaces/http/middleware"
	"github.com/panel/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting panel backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Backend clients
	storeClient, err := contentstore.NewClient(&contentstore.Config{
		BaseURL:  cfg.ContentStore.BaseURL,
		APIToken: cfg.ContentStore.APIToken,
		Timeout:  cfg.ContentStore.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create content store client", zap.Error(err))
	}

	orderClient, err := orders.NewClient(&orders.Config{
		BaseURL:        cfg.Orders.BaseURL,
		ConsumerKey:    cfg.Orders.ConsumerKey,
		ConsumerSecret: cfg.Orders.ConsumerSecret,
		Timeout:        cfg.Orders.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create order system client", zap.Error(err))
	}

	var carrierClient *carrier.Client
	if cfg.Carrier.BaseURL != "" {
		carrierClient, err = carrier.NewClient(&carrier.Config{
			BaseURL:       cfg.Carrier.BaseURL,
			APIKey:        cfg.Carrier.APIKey,
			WebhookSecret: cfg.Carrier.WebhookSecret,
			Timeout:       cfg.Carrier.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to create carrier client", zap.Error(err))
		}
	}

	// Activity sink
	var sink activity.Sink = activity.NopSink{}
	if cfg.Activity.SinkURL != "" {
		sink = activity.NewHTTPSink(cfg.Activity.SinkURL, cfg.Activity.Timeout, log)
	}

	// Application services
	catalogService := catalogapp.NewService(storeClient, log)
	reconcileService := fulfillmentapp.NewReconcileService(orderClient, sink, log)
	orderQuery := fulfillmentapp.NewOrderQueryService(orderClient, carrierClient, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Webhook routes stay outside token auth: the carrier authenticates
	// with its body signature instead
	router.NewRouter(engine).
		Register(handler.NewWebhookHandler(reconcileService, carrierClient)).
		Setup()

	router.NewRouter(engine,
		router.WithGroupMiddleware(middleware.TokenAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer)),
	).
		Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewOrderHandler(orderQuery)).
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
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
