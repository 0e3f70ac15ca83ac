package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crestbank/crest/pkg/auth"
	"github.com/crestbank/crest/pkg/kafka"
	"github.com/crestbank/crest/pkg/postgres"
	"github.com/crestbank/crest/pkg/telemetry"

	"github.com/crestbank/crest/services/calculator/internal/application/usecase"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/infrastructure/cache"
	"github.com/crestbank/crest/services/calculator/internal/infrastructure/config"
	"github.com/crestbank/crest/services/calculator/internal/infrastructure/customerdir"
	infraKafka "github.com/crestbank/crest/services/calculator/internal/infrastructure/kafka"
	infraPostgres "github.com/crestbank/crest/services/calculator/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/crestbank/crest/services/calculator/internal/presentation/grpc"
	"github.com/crestbank/crest/services/calculator/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "calculator-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger := telemetry.NewLogger(telemetry.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting calculator-service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing is fail-soft: the service runs without it.
	tracerShutdown, err := telemetry.InitTracer(ctx, telemetry.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = tracerShutdown(shutdownCtx)
		}()
	}

	meterProvider, metricsHandler, err := telemetry.InitMetrics()
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	// Database pool and migrations.
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	logger.Info("database pool created")

	if migErr := postgres.RunMigrations(cfg.DB.DSN(), cfg.Calc.MigrationsURL); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Kafka producer, optional.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		defer producer.Close()
		publisher = infraKafka.NewPublisher(producer)
		logger.Info("kafka producer created", "brokers", cfg.Kafka.Brokers)
	} else {
		logger.Info("kafka disabled, calculation events will not be published")
	}

	// Redis result cache, optional and fail-soft.
	var resultCache port.ResultCache
	if cfg.Redis.Enabled {
		redisCache, cacheErr := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if cacheErr != nil {
			logger.Warn("result cache disabled", "error", cacheErr)
		} else {
			defer redisCache.Close()
			resultCache = redisCache
			logger.Info("result cache connected", "addr", cfg.Redis.Addr)
		}
	}

	// Customer directory, optional.
	var directory port.CustomerDirectory
	if cfg.Customer.BaseURL != "" {
		directory = customerdir.NewClient(cfg.Customer.BaseURL, cfg.Customer.Timeout)
		logger.Info("customer directory configured", "url", cfg.Customer.BaseURL)
	}

	// Domain services and use cases.
	engine := service.NewInterestEngine(cfg.Calc.DefaultTDSRate)
	resolver := service.NewRateResolver(cfg.Calc.BonusPolicy)
	catalog := infraPostgres.NewProductRepo(pool)

	standalone := usecase.NewCalculateStandalone(engine, resolver, directory, resultCache,
		publisher, logger, cfg.Calc.GlobalMaxRate, cfg.Calc.CacheTTL)
	withProduct := usecase.NewCalculateWithProduct(engine, resolver, catalog, directory,
		resultCache, publisher, logger, cfg.Calc.CacheTTL)
	compare := usecase.NewCompareScenarios(standalone)
	listProducts := usecase.NewListProducts(catalog)
	getProduct := usecase.NewGetProduct(catalog)

	// JWT validation, shared by both transports.
	var authService *auth.Service
	if cfg.Auth.Enabled {
		authCfg := auth.Config{Issuer: cfg.Auth.Issuer, Secret: cfg.Auth.Secret}
		if cfg.Auth.PublicKeyPath != "" {
			keyData, loadErr := auth.LoadKeyFile(cfg.Auth.PublicKeyPath)
			if loadErr != nil {
				return fmt.Errorf("load JWT public key: %w", loadErr)
			}
			authCfg.PublicKeyPEM = string(keyData)
		}
		authService, err = auth.NewService(authCfg)
		if err != nil {
			return fmt.Errorf("initialize JWT service: %w", err)
		}
	} else {
		logger.Warn("authentication disabled")
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewHandler(standalone, withProduct, compare, listProducts, getProduct, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, cfg.GRPCPort, authService,
		grpcPresentation.TLSFiles{CertFile: cfg.TLS.CertFile, KeyFile: cfg.TLS.KeyFile})

	// REST server.
	restHandler := rest.NewHandler(standalone, withProduct, compare, listProducts, getProduct, logger)
	healthHandler := rest.NewHealthHandler(pool, logger)
	router := rest.NewRouter(restHandler, healthHandler, metricsHandler, authService)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	cancel()
	logger.Info("calculator-service stopped")
	return nil
}
