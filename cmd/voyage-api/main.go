// README: Entry point; loads config, wires providers, storage and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/amadeus"
	"voyage/internal/app"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/infra"
	"voyage/internal/logger"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/search"
	"voyage/internal/modules/trips"
	"voyage/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Init(logger.ParseLevel(cfg.Log.Level), zap.String("service", cfg.Telemetry.ServiceName)); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Log.Fatal("tracer init", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()
	metrics := observability.NewMetrics()
	if logger.ParseLevel(cfg.Log.Level) > zap.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Log.Fatal("firebase init", zap.Error(err))
		}
	} else {
		logger.Log.Warn("VOYAGE_FIREBASE_PROJECT_ID not set, auth disabled")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Log.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()
	if err := infra.WaitForDB(ctx, dbPool); err != nil {
		logger.Log.Fatal("db unreachable", zap.Error(err))
	}
	if cfg.DB.Migrate {
		if err := infra.RunMigrations(cfg.DB.DSN); err != nil {
			logger.Log.Fatal("migrations", zap.Error(err))
		}
	}

	var tokenCache amadeus.TokenCache
	if redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr); err != nil {
		logger.Log.Warn("redis unavailable, airport tokens cached in memory", zap.Error(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		tokenCache = amadeus.NewRedisTokenCache(redisClient)
	}

	providers, err := app.NewProviders(ctx, cfg, tokenCache)
	if err != nil {
		logger.Log.Fatal("providers", zap.Error(err))
	}
	defer providers.Close()

	planner, err := providers.Planner(metrics)
	if err != nil {
		logger.Log.Fatal("planner", zap.Error(err))
	}

	quotaSvc := quota.NewService(quota.NewStore(dbPool), cfg.Planner.MonthlyQuota)
	tripSvc := trips.NewService(trips.NewStore(dbPool), planner, quotaSvc)
	searchSvc := search.NewService(search.Deps{
		Weather:     providers.Weather,
		Airports:    providers.Airports,
		Flights:     providers.Flights,
		Hotels:      providers.Flights,
		Attractions: providers.Attractions,
	}, cfg.Planner.SearchCacheTTL)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Trips:       tripSvc,
		Search:      searchSvc,
		Quota:       quotaSvc,
		Verifier:    verifier,
		Metrics:     metrics,
		ServiceName: cfg.Telemetry.ServiceName,
		RatePerMin:  cfg.HTTP.RatePerMin,
		RateBurst:   cfg.HTTP.Burst,
	})

	// A planning run can take minutes.
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			logger.Log.Warn("http shutdown", zap.Error(err))
		}
	}()

	logger.Log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("http server", zap.Error(err))
	}
}
