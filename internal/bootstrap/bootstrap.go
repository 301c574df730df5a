package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appControllers "github.com/ArunAllanki/KithabBackend/internal/app/controllers"
	appMigrations "github.com/ArunAllanki/KithabBackend/internal/app/migrations"
	appRepos "github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	appRoutes "github.com/ArunAllanki/KithabBackend/internal/app/routes"
	appServices "github.com/ArunAllanki/KithabBackend/internal/app/services"
	"github.com/ArunAllanki/KithabBackend/internal/config"
	"github.com/ArunAllanki/KithabBackend/internal/db"
	appMiddleware "github.com/ArunAllanki/KithabBackend/internal/middleware"
	pkgAuth "github.com/ArunAllanki/KithabBackend/internal/pkg/auth"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/email"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/helpers"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	NoteService       appServices.NoteService
	ArchiveService    appServices.ArchiveService
	RegulationService appServices.RegulationService
	BranchService     appServices.BranchService
	SubjectService    appServices.SubjectService
	FacultyService    appServices.FacultyService
	AuthService       appServices.AuthService

	NoteController  *appControllers.NoteController
	MetaController  *appControllers.MetaController
	AdminController *appControllers.AdminController
	AuthController  *appControllers.AuthController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		AdminTokenExp:  helpers.ParseDuration(cfg.JWT.AdminTokenExpiration, 24*time.Hour),
		ResetSecretKey: cfg.JWT.ResetTokenSecret,
		ResetTokenExp:  helpers.ParseDuration(cfg.JWT.ResetTokenExpiration, 5*time.Minute),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.NoteService = appServices.NewNoteService(deps.Repos.Note, deps.Repos.Faculty, lgr)
	deps.ArchiveService = appServices.NewArchiveService(deps.Repos.Note, lgr)
	deps.RegulationService = appServices.NewRegulationService(deps.Repos.Regulation, lgr)
	deps.BranchService = appServices.NewBranchService(deps.Repos.Branch, lgr)
	deps.SubjectService = appServices.NewSubjectService(deps.Repos.Subject, lgr)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.Faculty, lgr)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.Student,
		deps.Repos.Faculty,
		deps.JWTService,
		deps.EmailService,
		appServices.AdminCredentials{ID: cfg.Admin.ID, Password: cfg.Admin.Password},
		cfg.Frontend.URL,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.NoteController = appControllers.NewNoteController(deps.NoteService, deps.ArchiveService)
	deps.MetaController = appControllers.NewMetaController(deps.RegulationService, deps.BranchService, deps.SubjectService)
	deps.AdminController = appControllers.NewAdminController(
		deps.RegulationService,
		deps.BranchService,
		deps.SubjectService,
		deps.FacultyService,
		deps.NoteService,
	)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(), appMiddleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.NoteController,
		deps.MetaController,
		deps.AdminController,
		deps.AuthController,
		deps.AuthMiddleware,
	)

	return router
}
