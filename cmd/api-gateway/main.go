package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/course-reg-api/internal/handler"
	"github.com/noah-isme/course-reg-api/internal/middleware"
	"github.com/noah-isme/course-reg-api/internal/repository"
	"github.com/noah-isme/course-reg-api/internal/service"
	"github.com/noah-isme/course-reg-api/pkg/config"
	"github.com/noah-isme/course-reg-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-reg-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-reg-api/pkg/middleware/requestid"
)

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

	store := repository.NewStore()
	userRepo := repository.NewUserRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	enrollmentRepo := repository.NewEnrollmentRepository(store)
	gradeRepo := repository.NewGradeRepository(store)
	adminRepo := repository.NewAdminRepository(store)

	validate := validator.New()
	metrics := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, validate, logr, metrics)
	gradeSvc := service.NewGradeService(gradeRepo, enrollmentRepo, courseRepo, cfg.Export.StorageDir, validate, logr)
	recommendSvc := service.NewRecommendationService(enrollmentRepo, logr)
	adminSvc := service.NewAdminService(adminRepo, logr)

	if cfg.Seed.Enabled {
		adminSvc.Seed()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static("/exports", cfg.Export.StorageDir)

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, userSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc, recommendSvc),
		Grades:      handler.NewGradeHandler(gradeSvc),
		Admin:       handler.NewAdminHandler(adminSvc),
		AuthService: authSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
