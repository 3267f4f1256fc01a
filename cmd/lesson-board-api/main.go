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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lesson-board-api/api/swagger"
	"github.com/noah-isme/lesson-board-api/internal/handler"
	"github.com/noah-isme/lesson-board-api/internal/middleware"
	"github.com/noah-isme/lesson-board-api/internal/repository"
	"github.com/noah-isme/lesson-board-api/internal/service"
	"github.com/noah-isme/lesson-board-api/pkg/cache"
	"github.com/noah-isme/lesson-board-api/pkg/config"
	"github.com/noah-isme/lesson-board-api/pkg/database"
	"github.com/noah-isme/lesson-board-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lesson-board-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lesson-board-api/pkg/middleware/requestid"
)

// @title Lesson Board API
// @version 1.0.0
// @description Back office for one-on-one lesson scheduling: weekly slot grid, teacher availability and greedy auto-assignment.
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	ctx := context.Background()
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, lesson cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, service.CacheOptions{
		Namespace:  cfg.Redis.Namespace,
		DefaultTTL: cfg.Lessons.CacheTTL,
		Enabled:    cfg.Lessons.CacheEnabled && redisClient != nil,
	}, logr)

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	linkRepo := repository.NewTeacherStudentRepository(db)
	settingRepo := repository.NewScheduleSettingRepository(db)
	availabilityRepo := repository.NewTeacherAvailabilityRepository(db)
	unavailableRepo := repository.NewUnavailableSlotRepository(db)
	lessonRepo := repository.NewLessonScheduleRepository(db)
	lessonDayRepo := repository.NewLessonDayRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	settingSvc := service.NewScheduleSettingService(settingRepo, unavailableRepo, validate, logr, cfg.Scheduler.DefaultTimezone)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, teacherRepo, validate, logr)
	unavailableSvc := service.NewUnavailableSlotService(unavailableRepo, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, linkRepo, teacherRepo, recordRepo, cacheSvc, validate, logr)
	lessonDaySvc := service.NewLessonDayService(lessonDayRepo, validate, logr)
	recordSvc := service.NewDailyRecordService(recordRepo, studentRepo, lessonDayRepo, cacheSvc, validate, logr)
	dashboardLocation, err := time.LoadLocation(cfg.Scheduler.DefaultTimezone)
	if err != nil {
		logr.Warn("invalid scheduler timezone, dashboard uses UTC", zap.String("timezone", cfg.Scheduler.DefaultTimezone), zap.Error(err))
		dashboardLocation = time.UTC
	}
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Repo:      dashboardRepo,
		Cache:     cacheSvc,
		Validator: validate,
		Logger:    logr,
		Config: service.DashboardServiceConfig{
			CacheTTL: cfg.Lessons.CacheTTL,
			Location: dashboardLocation,
		},
	})
	lessonSvc := service.NewLessonScheduleService(service.LessonScheduleDeps{
		Repo:         lessonRepo,
		Tx:           db,
		Settings:     settingSvc,
		Teachers:     teacherRepo,
		Students:     studentRepo,
		Availability: availabilityRepo,
		Cache:        cacheSvc,
		Metrics:      metrics,
		Validator:    validate,
		Logger:       logr,
	}, service.LessonScheduleOptions{
		RespectConfirmed: cfg.Scheduler.RespectConfirmed,
		WeekLock:         cfg.Scheduler.WeekLock,
		CacheTTL:         cfg.Lessons.CacheTTL,
	})

	checks := map[string]handler.ReadinessCheck{
		"database": db.PingContext,
	}
	if redisClient != nil {
		checks["cache"] = cacheRepo.Ping
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, middleware.ContextUserKey))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:            handler.NewAuthHandler(authSvc),
		ScheduleSetting: handler.NewScheduleSettingHandler(settingSvc),
		Availability:    handler.NewAvailabilityHandler(availabilitySvc),
		Unavailable:     handler.NewUnavailableSlotHandler(unavailableSvc),
		LessonSchedule:  handler.NewLessonScheduleHandler(lessonSvc),
		Teacher:         handler.NewTeacherHandler(teacherSvc),
		Student:         handler.NewStudentHandler(studentSvc),
		DailyRecord:     handler.NewDailyRecordHandler(lessonDaySvc, recordSvc),
		Dashboard:       handler.NewDashboardHandler(dashboardSvc),
		Metrics:         handler.NewMetricsHandler(metrics, checks),
	}, authSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
