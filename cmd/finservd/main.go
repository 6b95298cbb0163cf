package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Madhuarvind/ak-finserv/internal/application/usecase"
	"github.com/Madhuarvind/ak-finserv/internal/domain/service"
	"github.com/Madhuarvind/ak-finserv/internal/infrastructure/config"
	"github.com/Madhuarvind/ak-finserv/internal/infrastructure/kafka"
	"github.com/Madhuarvind/ak-finserv/internal/infrastructure/ml"
	pgRepo "github.com/Madhuarvind/ak-finserv/internal/infrastructure/postgres"
	grpcPresentation "github.com/Madhuarvind/ak-finserv/internal/presentation/grpc"
	"github.com/Madhuarvind/ak-finserv/internal/presentation/rest"
	"github.com/Madhuarvind/ak-finserv/pkg/auth"
	pkgkafka "github.com/Madhuarvind/ak-finserv/pkg/kafka"
	"github.com/Madhuarvind/ak-finserv/pkg/observability"
	pkgpostgres "github.com/Madhuarvind/ak-finserv/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting finserv",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meter, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without them", "error", err)
		meter = noop.Meter{}
	}
	intakeMetrics, err := usecase.NewIntakeMetrics(meter)
	if err != nil {
		logger.Error("failed to register intake counters", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://"+cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	collectionRepo := pgRepo.NewCollectionRepo(pool)
	directoryRepo := pgRepo.NewDirectoryRepo(pool)
	auditRepo := pgRepo.NewAuditRepo(pool)
	scopes := pgRepo.NewScopeRunner(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	riskProvider := ml.NewStubRiskProvider(logger)
	fraudGuard := service.NewFraudGuard()

	// Wire use cases.
	createLoanUC := usecase.NewCreateLoanUseCase(loanRepo)
	approveLoanUC := usecase.NewApproveLoanUseCase(scopes, publisher)
	activateLoanUC := usecase.NewActivateLoanUseCase(scopes, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	submitUC := usecase.NewSubmitCollectionUseCase(
		scopes, collectionRepo, directoryRepo, directoryRepo,
		fraudGuard, riskProvider, publisher, intakeMetrics, cfg.LocalZone(), logger,
	)
	reviewUC := usecase.NewReviewCollectionUseCase(collectionRepo, scopes, publisher)
	forecloseUC := usecase.NewForecloseLoanUseCase(scopes, publisher)
	listPendingUC := usecase.NewListPendingCollectionsUseCase(collectionRepo)
	deleteLoanUC := usecase.NewDeleteLoanUseCase(scopes, logger)
	loanAuditUC := usecase.NewGetLoanAuditUseCase(auditRepo)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.Issuer,
		Expiration: cfg.Auth.TokenTTL,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewFieldLoanHandler(
		createLoanUC, approveLoanUC, activateLoanUC, getLoanUC,
		submitUC, reviewUC, forecloseUC, listPendingUC, deleteLoanUC,
		loanAuditUC, logger,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("finserv stopped")
}
