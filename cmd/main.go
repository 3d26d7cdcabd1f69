package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khanhlt/learnboard/config"
	"github.com/khanhlt/learnboard/database"
	_ "github.com/khanhlt/learnboard/docs" // Swagger docs - auto-generated
	authctrl "github.com/khanhlt/learnboard/internal/controller/auth"
	mentorctrl "github.com/khanhlt/learnboard/internal/controller/mentor"
	studentctrl "github.com/khanhlt/learnboard/internal/controller/student"
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/logger"
	"github.com/khanhlt/learnboard/internal/middleware"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/khanhlt/learnboard/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Learnboard API
// @version 1.0
// @description Learning-management API: signup/login with role-based dashboards, assignments with resubmission versioning, and timed auto-scored quizzes.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			kvstore.NewGormStore, // Provides kvstore.Store
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewAccountRepository,
			repository.NewAssignmentRepository,
			repository.NewSubmissionRepository,
			repository.NewQuizRepository,
			repository.NewQuizAttemptRepository,
		),

		// Services layer
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewRoleService,
			service.NewAssignmentService,
			service.NewSubmissionService,
			service.NewQuizService,
			service.NewQuizAttemptService,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			mentorctrl.NewMentorController,
			studentctrl.NewStudentController,
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

	// Funnel request logging through the global zerolog instance.
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
		AllowOrigins:     []string{"*"},
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
	authCtrl *authctrl.AuthController,
	mentorCtrl *mentorctrl.MentorController,
	studentCtrl *studentctrl.StudentController,
) {
	// Public auth endpoints
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.GET("/landing", middleware.RequireAuth(tokens), authCtrl.Landing)
	}

	// Student routes (any authenticated account can read; writes are
	// student actions keyed to the caller identity)
	apiGroup := router.Group("/api/v1", middleware.RequireAuth(tokens))
	{
		apiGroup.GET("/assignments", studentCtrl.ListAssignments)
		apiGroup.GET("/quizzes", studentCtrl.ListQuizzes)

		studentGroup := apiGroup.Group("", middleware.RequireRole(model.RoleStudent))
		studentGroup.POST("/assignments/:assignment_id/submissions", studentCtrl.SubmitAssignment)
		studentGroup.GET("/my/submissions", studentCtrl.MySubmissions)
		studentGroup.POST("/quizzes/:quiz_id/attempts", studentCtrl.StartAttempt)
		studentGroup.PUT("/attempts/:session_id/answers", studentCtrl.RecordAnswer)
		studentGroup.POST("/attempts/:session_id/submit", studentCtrl.SubmitAttempt)
		studentGroup.GET("/my/attempts", studentCtrl.MyAttempts)

		// Mentor routes
		mentorGroup := apiGroup.Group("/mentor", middleware.RequireRole(model.RoleTeacher))
		mentorGroup.POST("/assignments", mentorCtrl.CreateAssignment)
		mentorGroup.GET("/assignments/:assignment_id/submissions", mentorCtrl.ListAssignmentSubmissions)
		mentorGroup.POST("/submissions/:submission_id/grade", mentorCtrl.GradeSubmission)
		mentorGroup.POST("/quizzes", mentorCtrl.PublishQuiz)
		mentorGroup.GET("/quizzes/:quiz_id/results", mentorCtrl.QuizResults)
		mentorGroup.GET("/summary", mentorCtrl.Summary)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Learnboard API server starting on port %s", cfg.Server.Port)
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
		&model.Account{},
		&kvstore.Record{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
