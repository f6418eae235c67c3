package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dtroode/georegions-server/internal/api/http/router"
	httpServer "github.com/dtroode/georegions-server/internal/api/http/server"
	"github.com/dtroode/georegions-server/internal/config"
	"github.com/dtroode/georegions-server/internal/geocoding"
	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/model"
	"github.com/dtroode/georegions-server/internal/observability"
	"github.com/dtroode/georegions-server/internal/repository/memory"
	"github.com/dtroode/georegions-server/internal/repository/mongo"
	"github.com/dtroode/georegions-server/internal/repository/postgres"
	"github.com/dtroode/georegions-server/internal/server"
	"github.com/dtroode/georegions-server/internal/service"
	"github.com/dtroode/georegions-server/internal/storage/redis"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// store is what the services and the health check need from a backend.
type store interface {
	model.Transactor
	model.Pinger
	Stores() model.Stores
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, os.Stdout, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer observability.Shutdown(context.Background(), shutdownTracing, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Store.Driver)
	}
	defer closeStore()

	var cache model.GeocodeCache
	if cfg.Redis.URL != "" {
		redisClient, err := redis.Connect(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL, logger)
		if err != nil {
			logger.Fatal("failed to initialize geocode cache", "error", err)
		}
		defer redisClient.Close()
		cache = redisClient
	}

	google := geocoding.NewGoogleClient(
		cfg.Geocoder.APIURL,
		cfg.Geocoder.APIKey,
		cfg.Geocoder.Timeout,
		cfg.Geocoder.MaxRetries,
		logger,
		geocoding.WithMetrics(m),
	)
	geocoder := geocoding.NewCached(google, cache, m, logger, geocoding.WithLookupTimeout(cfg.HTTP.RequestTimeout))

	consistency := service.NewConsistency(geocoder, logger)
	userService := service.NewUser(st.Stores(), st, consistency, logger)
	regionService := service.NewRegion(st.Stores(), st, consistency, logger)

	handler := router.New(userService, regionService, st, m, registry, cfg.HTTP.RequestTimeout, logger).Register()
	srv := httpServer.NewHTTPServer(handler, cfg.HTTP.Address, cfg.HTTP.ReadHeaderTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStore connects the configured backend and returns a function that
// releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(conn, cfg.Store.TxTimeout), func() { _ = conn.Close() }, nil

	case config.DriverMongo:
		s, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Transactions, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.Close(closeCtx)
		}, nil

	default:
		logger.Warn("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return s, func() { _ = s.Close() }, nil
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
