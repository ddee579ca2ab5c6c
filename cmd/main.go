package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hndoan/Lorises/config"
	"github.com/hndoan/Lorises/database"
	adminctrl "github.com/hndoan/Lorises/internal/controller/admin"
	authctrl "github.com/hndoan/Lorises/internal/controller/auth"
	reviewerctrl "github.com/hndoan/Lorises/internal/controller/reviewer"
	userctrl "github.com/hndoan/Lorises/internal/controller/user"
	"github.com/hndoan/Lorises/internal/logger"
	"github.com/hndoan/Lorises/internal/middleware"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/hndoan/Lorises/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Language Proficiency Testing API
// @version 1.0
// @description API for administering language proficiency tests: signup with email verification, timed test taking, human review of open-ended sections, and aggregated scoring.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewEmailVerificationRepository,
			repository.NewTemplateRepository,
			repository.NewQuestionRepository,
			repository.NewInstanceRepository,
			repository.NewAnswerRepository,
			repository.NewReviewRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTokenService,
			service.NewMailerService,
			service.NewCapabilityService,
			service.NewAuthService,
			service.NewAutoGraderService,
			service.NewScoreAggregatorService,
			service.NewAdminTemplateService,
			service.NewUserTestService,
			service.NewSubmissionService,
			service.NewReviewService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewAdminTemplateController,
			userctrl.NewUserTestController,
			reviewerctrl.NewReviewController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route requests through zerolog instead of Gin's default logger
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	caps service.CapabilityService,
	authCtrl *authctrl.AuthController,
	adminCtrl *adminctrl.AdminTemplateController,
	userCtrl *userctrl.UserTestController,
	reviewCtrl *reviewerctrl.ReviewController,
) {
	api := router.Group("/api/v1")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/verify-email", authCtrl.VerifyEmail)
		authGroup.POST("/login", authCtrl.Login)
	}

	// Authenticated learner routes
	learnerGroup := api.Group("")
	learnerGroup.Use(middleware.RequireAuth(tokens))
	{
		learnerGroup.GET("/templates", userCtrl.GetAllTemplates)
		learnerGroup.GET("/templates/:template_id", userCtrl.GetTemplateDetails)
		learnerGroup.POST("/templates/:template_id/instances", userCtrl.StartTest)

		learnerGroup.GET("/instances", userCtrl.GetMyInstances)
		learnerGroup.GET("/instances/:instance_id", userCtrl.GetInstanceDetails)
		learnerGroup.POST("/instances/:instance_id/submit", userCtrl.SubmitAnswers)
		learnerGroup.POST("/instances/:instance_id/cancel", userCtrl.CancelInstance)
	}

	// Reviewer routes
	reviewGroup := api.Group("/review")
	reviewGroup.Use(middleware.RequireAuth(tokens), middleware.RequireReviewer(caps))
	{
		reviewGroup.GET("/pending", reviewCtrl.ListPending)
		reviewGroup.GET("/:instance_id", reviewCtrl.GetReviewBundle)
		reviewGroup.POST("/:instance_id", reviewCtrl.SubmitReview)
	}

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin(caps))
	{
		templatesAdmin := adminGroup.Group("/templates")
		templatesAdmin.POST("", adminCtrl.CreateTemplate)
		templatesAdmin.PUT("/:template_id", adminCtrl.UpdateTemplate)
		templatesAdmin.DELETE("/:template_id", adminCtrl.DeleteTemplate)
		templatesAdmin.POST("/:template_id/questions", adminCtrl.AddQuestion)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Language proficiency API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// AutoMigrateDB migrates the schema and seeds the built-in roles.
func AutoMigrateDB(db *gorm.DB, userRepo repository.UserRepository) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.EmailVerification{},
		&model.TestTemplate{},
		&model.Question{},
		&model.TestInstance{},
		&model.Answer{},
		&model.Review{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	for _, role := range []string{model.RoleLearner, model.RoleReviewer, model.RoleAdmin, model.RoleSuperAdmin} {
		if err := userRepo.EnsureRole(role); err != nil {
			log.Error().Err(err).Str("role", role).Msg("Failed to seed role")
			return err
		}
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}
