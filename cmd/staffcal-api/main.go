package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/staffcal/staffcal-api/api/swagger"
	"github.com/staffcal/staffcal-api/internal/gateway"
	"github.com/staffcal/staffcal-api/internal/handler"
	"github.com/staffcal/staffcal-api/internal/middleware"
	"github.com/staffcal/staffcal-api/internal/repository"
	"github.com/staffcal/staffcal-api/internal/service"
	"github.com/staffcal/staffcal-api/pkg/cache"
	"github.com/staffcal/staffcal-api/pkg/config"
	"github.com/staffcal/staffcal-api/pkg/database"
	"github.com/staffcal/staffcal-api/pkg/logger"
	corsmiddleware "github.com/staffcal/staffcal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/staffcal/staffcal-api/pkg/middleware/requestid"
	"github.com/staffcal/staffcal-api/pkg/storage"
)

// @title StaffCal API
// @version 1.0.0
// @description Staff scheduling calendar service: recurrence expansion, overlap layout, business-hours bands and drag repositioning.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	gw, err := buildGateway(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build gateway", "backend", cfg.Gateway.Backend, "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	gw = gateway.Instrument(gw, metricsSvc)

	var cacheRepo *repository.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, window caching disabled", "error", err)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	var windowCache service.WindowCache
	var invalidator service.WindowInvalidator
	if cacheRepo != nil {
		windowCache = cacheRepo
		invalidator = cacheRepo
	}

	calendarSvc := service.NewCalendarService(gw, windowCache, cfg.Calendar.CacheTTL, metricsSvc, validate, logr)
	availabilitySvc := service.NewAvailabilityService(gw, invalidator, validate, logr)
	businessSvc := service.NewBusinessHoursService(gw, invalidator, validate, logr)
	referenceSvc := service.NewReferenceService(gw, logr)

	handlers := handler.Handlers{
		Calendar:      handler.NewCalendarHandler(calendarSvc),
		Availability:  handler.NewAvailabilityHandler(availabilitySvc),
		BusinessHours: handler.NewBusinessHoursHandler(businessSvc),
		Reference:     handler.NewReferenceHandler(referenceSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.Dir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.ResultTTL)
		exportSvc = service.NewExportService(gw, files, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.ResultTTL,
			Workers:   cfg.Exports.Workers,
		}, logr)
		exportSvc.Start(ctx)
		defer exportSvc.Stop()
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.Register(r, cfg.APIPrefix, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "gateway", cfg.Gateway.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// buildGateway selects the rule store backend from configuration.
func buildGateway(cfg *config.Config, logr *zap.Logger) (gateway.Gateway, error) {
	switch cfg.Gateway.Backend {
	case config.GatewayBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return gateway.NewStoreGateway(
			repository.NewAvailabilityRepository(db),
			repository.NewBusinessHoursRepository(db),
			repository.NewScheduleRepository(db),
			repository.NewPersonRepository(db),
			repository.NewRoleRepository(db),
		), nil
	case config.GatewayBackendHTTP:
		return gateway.NewHTTPGateway(cfg.Gateway, logr), nil
	case config.GatewayBackendMemory:
		return gateway.NewSeededMemoryGateway(), nil
	default:
		return nil, fmt.Errorf("unknown gateway backend %q", cfg.Gateway.Backend)
	}
}
