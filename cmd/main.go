package main

import (
	"context"
	"net/http"
	"time"

	"github.com/davrbek/quizcore/config"
	"github.com/davrbek/quizcore/database"
	_ "github.com/davrbek/quizcore/docs" // Swagger docs - auto-generated
	adminctrl "github.com/davrbek/quizcore/internal/controller/admin"
	userctrl "github.com/davrbek/quizcore/internal/controller/user"
	"github.com/davrbek/quizcore/internal/logger"
	"github.com/davrbek/quizcore/internal/middleware"
	"github.com/davrbek/quizcore/internal/model"
	"github.com/davrbek/quizcore/internal/repository"
	"github.com/davrbek/quizcore/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quiz Platform API
// @version 1.0
// @description Backend for authoring multiple-choice tests, assigning them to takers and scoring submissions.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewTxManager,
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewFeedbackRepository,
		),

		fx.Provide(
			service.NewUserTestService,
			service.NewSubmissionService,
			service.NewAdminTestService,
		),

		fx.Provide(
			userctrl.NewUserTestController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userTestCtrl *userctrl.UserTestController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	api := router.Group("/api")
	{
		api.POST("/start-test", userTestCtrl.StartTest)
		api.POST("/tests/:id/submit", userTestCtrl.SubmitTest)
		api.POST("/tests/:id/feedback", userTestCtrl.SubmitFeedback)
	}

	adminAPI := router.Group("/api/admin")
	adminAPI.Use(middleware.Authenticate(cfg.JWTSecret), middleware.RequireAdmin())
	{
		adminAPI.POST("/tests", adminTestCtrl.CreateTest)
		adminAPI.PUT("/tests/:id", adminTestCtrl.UpdateTest)
		adminAPI.DELETE("/tests/:id", adminTestCtrl.DeleteTest)
		adminAPI.GET("/tests/:id/results", adminTestCtrl.GetTestResults)
		adminAPI.GET("/tests/:id/feedback", adminTestCtrl.GetTestFeedback)
		adminAPI.GET("/results", adminTestCtrl.GetAllResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz platform API server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Option{},
		&model.QuestionMedia{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
