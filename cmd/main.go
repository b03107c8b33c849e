package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/neoarcana-server/internal/api/grpc/context"
	"github.com/dtroode/neoarcana-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/neoarcana-server/internal/api/grpc/server"
	"github.com/dtroode/neoarcana-server/internal/config"
	"github.com/dtroode/neoarcana-server/internal/generator"
	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/metrics"
	"github.com/dtroode/neoarcana-server/internal/model"
	"github.com/dtroode/neoarcana-server/internal/repository/postgres"
	"github.com/dtroode/neoarcana-server/internal/service"
	archive "github.com/dtroode/neoarcana-server/internal/storage/minio"
	"github.com/dtroode/neoarcana-server/internal/storage/redis"
	"github.com/dtroode/neoarcana-server/internal/telemetry"
	"github.com/dtroode/neoarcana-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	location, err := cfg.Quota.Location()
	if err != nil {
		logger.Fatal("invalid quota configuration", "error", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	posterRepo := postgres.NewPosterRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)

	var artifacts model.ArtifactStore = postgres.NewArtifactRepository(db)
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		artifacts = redis.NewArtifactCache(rdb, artifacts, cfg.Redis.TTL, logger)
		logger.Info("artifact cache enabled", "addr", cfg.Redis.Addr)
	}

	sinks := []model.HistorySink{historyRepo}
	if cfg.Storage.Enabled {
		if sink, err := newArchive(ctx, cfg.Storage); err != nil {
			logger.Error("reading archive disabled", "error", err)
		} else {
			sinks = append(sinks, sink)
		}
	}

	fallbacks, err := generator.LoadFallbacks()
	if err != nil {
		logger.Fatal("failed to load fallback readings", "error", err)
	}
	if cfg.Generator.APIKey == "" {
		logger.Warn("GENERATOR_API_KEY is empty, every reading will be a fallback")
	}
	gen := generator.NewAnthropic(cfg.Generator, generator.NewDeck(), logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	readingMetrics := metrics.NewReadings(registry)

	gate := service.NewGate(posterRepo, userRepo, logger)
	quota := service.NewQuota(userRepo, location, logger)
	cache := service.NewCache(artifacts, location, logger)
	readingService := service.NewReading(gate, quota, cache, gen, fallbacks, historyRepo, sinks, readingMetrics,
		service.ReadingOptions{
			GenerationTimeout: cfg.Generator.Timeout,
			MaxRetries:        cfg.Generator.MaxRetries,
		}, logger)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	registrationService := service.NewRegistration(gate, posterRepo, userRepo, tokenManager, logger)

	grpcSrv := registerGRPCServer(logger, readingService, registrationService, tokenManager, fmt.Sprintf(":%s", cfg.GRPC.Port))
	metricsSrv := newMetricsServer(registry, fmt.Sprintf(":%s", cfg.Metrics.Port))

	logAppVersion()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server on", "address", grpcSrv.Address())
		return grpcSrv.Start(grpcServer.NewSecurityLayer(cfg.GRPC))
	})
	g.Go(func() error {
		logger.Info("Starting metrics server on", "address", metricsSrv.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("grpc server: %w", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
		readingService.Wait()
		if err := shutdownTracing(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

func newArchive(ctx context.Context, cfg config.Storage) (*archive.Archive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return archive.NewArchive(ctx, minioClient, cfg.Bucket)
}

func newMetricsServer(registry *prometheus.Registry, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	logger *logger.Logger,
	readingService *service.Reading,
	registrationService *service.Registration,
	tokenManager model.TokenManager,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(readingService, registrationService, tokenManager, grpcctx.NewManager(), logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
