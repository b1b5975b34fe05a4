package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lab-portal-api/api/swagger"
	"github.com/noah-isme/lab-portal-api/internal/handler"
	internalmiddleware "github.com/noah-isme/lab-portal-api/internal/middleware"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	"github.com/noah-isme/lab-portal-api/internal/service"
	"github.com/noah-isme/lab-portal-api/pkg/cache"
	"github.com/noah-isme/lab-portal-api/pkg/config"
	"github.com/noah-isme/lab-portal-api/pkg/export"
	"github.com/noah-isme/lab-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lab-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lab-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

// @title Lab Portal API
// @version 1.0.0
// @description View gateway for the lab portal: notifications, submissions, venues and supervisions.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	metricsSvc := service.NewMetricsService()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, cfg.Cache.Prefix, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	backend := repository.NewBackendClient(cfg.Backend.BaseURL, nil, cfg.Backend.Timeout, logr, metricsSvc)
	notificationRepo := repository.NewNotificationRepository(backend)
	projectRepo := repository.NewProjectRepository(backend)
	venueRepo := repository.NewVenueRepository(backend)
	supervisionRepo := repository.NewSupervisionRepository(backend)

	tz := timezone.NewNormalizer(cfg.Timezone.Canonical, cfg.Timezone.Label)
	projector := service.NewProjector(tz, time.Now)
	validate := service.DefaultValidator()

	authSvc := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	exportSvc := service.NewExportService(logr, export.NewCSVExporter(), export.NewPDFExporter())
	notificationSvc := service.NewNotificationService(notificationRepo, projector, cacheSvc, metricsSvc, logr)
	submissionSvc := service.NewSubmissionService(projectRepo, venueRepo, projector, validate, cacheSvc, metricsSvc, logr)
	venueSvc := service.NewVenueService(venueRepo, projector, validate, cacheSvc, metricsSvc, logr)
	supervisionSvc := service.NewSupervisionService(supervisionRepo, projector, validate, cacheSvc, metricsSvc, logr)

	notificationHandler := handler.NewNotificationHandler(notificationSvc, exportSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, exportSvc)
	venueHandler := handler.NewVenueHandler(venueSvc, exportSvc)
	supervisionHandler := handler.NewSupervisionHandler(supervisionSvc, exportSvc)
	readiness := map[string]handler.Pinger{}
	if redisClient != nil {
		readiness["cache"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(authSvc))

	api.GET("/metrics/summary", metricsHandler.Snapshot)

	notifications := api.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.GET("/export", notificationHandler.Export)
	notifications.DELETE("/:id", internalmiddleware.Audit(logr, "delete", "notification"), notificationHandler.Delete)

	submissions := api.Group("/submissions")
	submissions.GET("", submissionHandler.List)
	submissions.GET("/export", submissionHandler.Export)
	submissions.GET("/venue-suggestions", submissionHandler.VenueSuggestions)
	submissions.PUT("/:id/venue", internalmiddleware.Audit(logr, "update_venue", "submission"), submissionHandler.UpdateVenue)

	venues := api.Group("/venues")
	venues.GET("", venueHandler.List)
	venues.GET("/export", venueHandler.Export)
	venues.POST("", internalmiddleware.Audit(logr, "create", "venue"), venueHandler.Create)
	venues.PUT("/:id", internalmiddleware.Audit(logr, "update", "venue"), venueHandler.Update)
	venues.DELETE("/:id", internalmiddleware.Audit(logr, "delete", "venue"), venueHandler.Delete)

	supervisions := api.Group("/supervisions", internalmiddleware.RequireRoles(models.RoleFaculty))
	supervisions.GET("", supervisionHandler.List)
	supervisions.GET("/export", supervisionHandler.Export)
	supervisions.GET("/faculty", supervisionHandler.Faculty)
	supervisions.POST("", internalmiddleware.Audit(logr, "save", "supervision"), supervisionHandler.Save)
	supervisions.DELETE("/unsupervise", internalmiddleware.Audit(logr, "unsupervise", "supervision"), supervisionHandler.Unsupervise)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL, "cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
