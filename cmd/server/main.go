package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	httpAdapter "github.com/Muzammil2410/fiver-sub001/internal/adapter/http"
	natsAdapter "github.com/Muzammil2410/fiver-sub001/internal/adapter/messaging/nats"
	"github.com/Muzammil2410/fiver-sub001/internal/adapter/repository/cache"
	mongoRepo "github.com/Muzammil2410/fiver-sub001/internal/adapter/repository/mongodb"
	"github.com/Muzammil2410/fiver-sub001/internal/adapter/storage/s3"
	"github.com/Muzammil2410/fiver-sub001/internal/config"
	gigUsecase "github.com/Muzammil2410/fiver-sub001/internal/gig/usecase"
	"github.com/Muzammil2410/fiver-sub001/internal/mailer"
	orderUsecase "github.com/Muzammil2410/fiver-sub001/internal/order/usecase"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/tracer"
	reviewUsecase "github.com/Muzammil2410/fiver-sub001/internal/review/usecase"
	userUsecase "github.com/Muzammil2410/fiver-sub001/internal/user/usecase"
)

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...")

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// OpenTelemetry tracer, optional
	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp, err = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint)
		if err != nil {
			appLogger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
		appLogger.Info("OpenTelemetry Tracer initialized.")
	}

	// MongoDB
	mongoClient, err := mongoRepo.NewClient(context.Background(), cfg.MongoURI)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)
	appLogger.Info("Connected to MongoDB.", zap.String("database", cfg.MongoDatabase))

	// Redis cache
	gigCache, err := cache.NewGigCache(cfg.RedisAddress)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Redis cache initialized.")

	// NATS publisher
	publisher, err := natsAdapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer publisher.Close()
	appLogger.Info("NATS Publisher initialized.")

	// MinIO cover storage
	coverStorage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize cover storage", zap.Error(err))
	}
	appLogger.Info("Cover storage initialized.", zap.String("bucket", cfg.MinIOBucket))

	// Repositories
	gigRepo, err := mongoRepo.NewGigRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize GigRepository", zap.Error(err))
	}
	orderRepo, err := mongoRepo.NewOrderRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize OrderRepository", zap.Error(err))
	}
	reviewRepo, err := mongoRepo.NewReviewRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ReviewRepository", zap.Error(err))
	}
	userRepo, err := mongoRepo.NewUserRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize UserRepository", zap.Error(err))
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	mail := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	// Usecases
	searchUC := gigUsecase.NewSearchUsecase(gigRepo, orderRepo, metricsManager, appLogger)
	gigUC := gigUsecase.NewGigUsecase(gigRepo, orderRepo, userRepo, gigCache, coverStorage, publisher, metricsManager, appLogger)
	orderUC := orderUsecase.NewOrderUsecase(orderRepo, gigRepo, userRepo, publisher, mail, metricsManager, appLogger)
	reviewUC := reviewUsecase.NewReviewUsecase(reviewRepo, gigRepo, publisher, metricsManager, appLogger)
	userUC := userUsecase.NewUserUsecase(userRepo, cfg.JWTSecret, appLogger)

	// HTTP router
	handlers := httpAdapter.Handlers{
		Gigs:    httpAdapter.NewGigHandler(searchUC, gigUC, appLogger),
		Orders:  httpAdapter.NewOrderHandler(orderUC, appLogger),
		Reviews: httpAdapter.NewReviewHandler(reviewUC, appLogger),
		Users:   httpAdapter.NewUserHandler(userUC, appLogger),
	}
	router := httpAdapter.NewRouter(handlers, cfg.JWTSecret, metricsManager, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Prometheus metrics server
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("port", cfg.PrometheusMetricsPort))
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}

	appLogger.Info("Application shutting down...")
}
