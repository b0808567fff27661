package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sergiomillane/motor-decisiones/internal/application/usecase"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/config"
	kafkapub "github.com/sergiomillane/motor-decisiones/internal/infrastructure/kafka"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/metrics"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/referencedata"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/rules"
	grpcpresentation "github.com/sergiomillane/motor-decisiones/internal/presentation/grpc"
	"github.com/sergiomillane/motor-decisiones/internal/presentation/rest"
	pkgkafka "github.com/sergiomillane/motor-decisiones/pkg/kafka"
	"github.com/sergiomillane/motor-decisiones/pkg/observability"
	"github.com/sergiomillane/motor-decisiones/pkg/postgres"
	"github.com/sergiomillane/motor-decisiones/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("decision-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	logger.Info("starting decision-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	tracerProvider, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Insecure:     true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracerProvider.Shutdown(shutdownCtx)
		}()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background()) //nolint:errcheck

	recorder, err := metrics.NewDecisionMetrics(meterProvider)
	if err != nil {
		return err
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	db, err := postgres.Open(dbCtx, postgres.Config{URL: cfg.DB.URL, MaxConns: 10, MinConns: 2})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close() //nolint:errcheck
	logger.Info("connected to database")

	// Reference data.
	provider := newProvider(cfg, db, logger)
	if err := provider.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	// Scoring rules.
	table, err := rules.Resolve(cfg.Rules.BureauTable, cfg.Rules.RulesFile)
	if err != nil {
		return err
	}
	nullPolicy, err := service.ParseNullPolicy(cfg.Rules.NullPolicy)
	if err != nil {
		return err
	}
	logger.Info("scoring rules loaded",
		"bureau_table", table.Name,
		"null_policy", string(nullPolicy),
	)

	// Event publisher.
	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Wire use cases.
	evaluateExisting := usecase.NewEvaluateExistingClient(provider, publisher, recorder,
		service.NewExistingClientPipeline(table, nullPolicy), logger)
	evaluateNew := usecase.NewEvaluateNewApplicant(publisher, recorder, service.NewNewClientPipeline(), logger)
	refresh := usecase.NewRefreshReferenceData(provider)

	// gRPC server.
	serverOpts := grpcpresentation.ServerOptions{Reflection: cfg.GRPCReflection}
	if cfg.TLS.CertFile != "" {
		creds, err := tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return err
		}
		serverOpts.Creds = creds
	}
	grpcHandler := grpcpresentation.NewCreditDecisionHandler(evaluateExisting, evaluateNew, refresh, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddr(), logger, serverOpts)
	grpcServer.SetServing(provider.Ready())

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
		"reference_data": func(context.Context) error {
			if !provider.Ready() {
				return port.ErrReferenceDataNotReady
			}
			return nil
		},
		"database": func(ctx context.Context) error { return postgres.HealthCheck(ctx, db) },
	}, metricsHandler, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("decision-service started",
		"grpc_address", cfg.GRPCAddr(),
		"http_address", cfg.HTTPAddr(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down decision-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("decision-service stopped")
	return serveErr
}

func newProvider(cfg config.Config, db *sql.DB, logger *slog.Logger) *referencedata.Provider {
	sqlSource := referencedata.NewSQLSource(db)
	sources := referencedata.Sources{
		History:      sqlSource,
		Installments: sqlSource,
		Collections:  sqlSource,
	}
	if cfg.ReferenceData.BehaviorVectorPath != "" {
		sources.Behavior = referencedata.NewCSVSource(
			referencedata.CSVPaths{Behavior: cfg.ReferenceData.BehaviorVectorPath},
			cfg.ReferenceData.BehaviorTags,
		)
	}

	var cache referencedata.SnapshotCache
	if cfg.Redis.Addr != "" {
		client := referencedata.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cache = referencedata.NewRedisSnapshotCache(client, referencedata.DefaultSnapshotKey, cfg.Redis.CacheTTL)
		logger.Info("reference snapshot cache enabled", "redis_addr", cfg.Redis.Addr)
	}

	return referencedata.NewProvider(sources, cache, logger)
}

func newPublisher(cfg config.Config, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, logging domain events instead")
		return kafkapub.NewLoggingPublisher(logger), func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		TLS:           cfg.Kafka.TLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("failed to close kafka producer", "error", err)
		}
	}
	return kafkapub.NewPublisher(producer, cfg.Kafka.Topic, logger), closeFn, nil
}
