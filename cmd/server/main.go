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

	catalogapp "github.com/sheetstock/backend/internal/application/catalog"
	"github.com/sheetstock/backend/internal/application/document"
	inventoryapp "github.com/sheetstock/backend/internal/application/inventory"
	"github.com/sheetstock/backend/internal/application/notification"
	stockapp "github.com/sheetstock/backend/internal/application/stock"
	tradeapp "github.com/sheetstock/backend/internal/application/trade"
	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/stock"
	"github.com/sheetstock/backend/internal/infrastructure/config"
	"github.com/sheetstock/backend/internal/infrastructure/logger"
	"github.com/sheetstock/backend/internal/infrastructure/mail"
	"github.com/sheetstock/backend/internal/infrastructure/persistence/xlsx"
	"github.com/sheetstock/backend/internal/infrastructure/storage"
	"github.com/sheetstock/backend/internal/interfaces/http/handler"
	"github.com/sheetstock/backend/internal/interfaces/http/middleware"
	"github.com/sheetstock/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting SheetStock",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Open the workbook, creating the file and any missing sheets.
	store, err := xlsx.OpenWorkbook(cfg.Workbook.Path, cfg.Workbook.Tables()...)
	if err != nil {
		log.Fatal("Failed to open workbook", zap.Error(err))
	}
	log.Info("Workbook opened", zap.String("path", cfg.Workbook.Path))

	// Notifications: SMTP when configured, otherwise disabled.
	var mailer notification.Mailer
	if cfg.Mail.Enabled() {
		smtpMailer, err := mail.NewSMTPMailer(&cfg.Mail)
		if err != nil {
			log.Fatal("Failed to configure mail", zap.Error(err))
		}
		mailer = smtpMailer
		log.Info("Mail notifications enabled", zap.String("host", cfg.Mail.Host))
	}
	notifier := notification.NewService(mailer, cfg.Mail.ReportRecipients, log)

	// Object storage: S3-compatible when configured, stub otherwise.
	var objectStorage document.ObjectStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to configure object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, using stub")
	}

	// Domain services over the workbook.
	loader := catalog.NewLoader(store, cfg.Workbook.MaterialsTable)
	engine := stock.NewEngine(store, stock.Tables{
		Catalog:     cfg.Workbook.MaterialsTable,
		Purchases:   cfg.Workbook.PurchasesTable,
		Sales:       cfg.Workbook.SalesTable,
		Adjustments: cfg.Workbook.AdjustmentsTable,
		Summary:     cfg.Workbook.SummaryTable,
	})

	stockService := stockapp.NewService(engine, notifier)
	purchaseService := tradeapp.NewPurchaseOrderService(store, loader, cfg.Workbook.PurchasesTable, notifier)
	salesService := tradeapp.NewSalesOrderService(store, loader, cfg.Workbook.SalesTable, notifier)
	adjustmentService := inventoryapp.NewAdjustmentService(store, loader, cfg.Workbook.AdjustmentsTable)
	materialService := catalogapp.NewMaterialService(store, loader,
		ledger.PurchaseLayout(cfg.Workbook.PurchasesTable),
		ledger.SalesLayout(cfg.Workbook.SalesTable),
		ledger.AdjustmentLayout(cfg.Workbook.AdjustmentsTable),
	)
	documentService := document.NewService(objectStorage, purchaseService, salesService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engineHTTP := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engineHTTP.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engineHTTP.Use(middleware.RequestID())
	engineHTTP.Use(logger.Recovery(log))
	engineHTTP.Use(logger.GinMiddleware(log))
	engineHTTP.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engineHTTP.Use(middleware.CORSWithConfig(corsConfig))
	engineHTTP.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engineHTTP.GET("/health", healthHandler(store, cfg.Workbook.MaterialsTable))

	router.NewRouter(engineHTTP).
		Register(handler.NewStockHandler(stockService)).
		Register(handler.NewMaterialHandler(materialService)).
		Register(handler.NewPurchaseOrderHandler(purchaseService)).
		Register(handler.NewSalesOrderHandler(salesService)).
		Register(handler.NewAdjustmentHandler(adjustmentService)).
		Register(handler.NewDocumentHandler(documentService)).
		Register(handler.NewSystemHandler(cfg.App.Name, version)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engineHTTP,
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

// healthHandler reports whether the workbook is readable.
func healthHandler(store *xlsx.WorkbookStore, probeTable string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if _, err := store.ReadRow(c.Request.Context(), probeTable, 1); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"workbook": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"workbook": "ok",
		})
	}
}
