package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ediary-dev/ediary-api/api/swagger"
	"github.com/ediary-dev/ediary-api/internal/handler"
	"github.com/ediary-dev/ediary-api/internal/middleware"
	"github.com/ediary-dev/ediary-api/internal/models"
	"github.com/ediary-dev/ediary-api/internal/repository"
	"github.com/ediary-dev/ediary-api/internal/service"
	"github.com/ediary-dev/ediary-api/pkg/cache"
	"github.com/ediary-dev/ediary-api/pkg/config"
	"github.com/ediary-dev/ediary-api/pkg/database"
	"github.com/ediary-dev/ediary-api/pkg/logger"
	corsmiddleware "github.com/ediary-dev/ediary-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ediary-dev/ediary-api/pkg/middleware/requestid"
)

// @title E-Diary Schedule API
// @version 1.0.0
// @description Class schedule and lesson time-slot resolution service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Slots.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Slots.CacheTTL, logr, true)
	}

	defaultSlotRepo := repository.NewDefaultSlotRepository(db)
	overrideRepo := repository.NewSlotOverrideRepository(db)
	entryRepo := repository.NewScheduleEntryRepository(db)
	subgroupRepo := repository.NewSubgroupRepository(db)

	authSvc := service.NewAuthService(service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
	}, logr)
	timeSlotSvc := service.NewTimeSlotService(defaultSlotRepo, overrideRepo, cacheSvc, nil, logr)
	scheduleSvc := service.NewScheduleService(entryRepo, timeSlotSvc, subgroupRepo, nil, logr)

	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, cfg.Export.Enabled)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/slots/defaults", timeSlotHandler.ListDefaults)
		api.GET("/classes/:id/slots", timeSlotHandler.ListEffective)
		api.GET("/classes/:id/schedule", scheduleHandler.Get)
		api.GET("/classes/:id/schedule/export", scheduleHandler.Export)

		admin := api.Group("")
		admin.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
		{
			admin.PUT("/classes/:id/slots/:slotNumber", timeSlotHandler.UpsertOverride)
			admin.DELETE("/classes/:id/slots/:slotNumber", timeSlotHandler.DeleteOverride)
			admin.DELETE("/classes/:id/slots", timeSlotHandler.ResetOverrides)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
