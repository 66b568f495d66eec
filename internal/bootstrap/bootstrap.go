package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mhasan/dancecamp/docs" // Import generated swagger docs
	appAuth "github.com/mhasan/dancecamp/internal/app/auth"
	appControllers "github.com/mhasan/dancecamp/internal/app/controllers"
	appMigrations "github.com/mhasan/dancecamp/internal/app/migrations"
	appRepos "github.com/mhasan/dancecamp/internal/app/repositories"
	appRoutes "github.com/mhasan/dancecamp/internal/app/routes"
	appServices "github.com/mhasan/dancecamp/internal/app/services"
	"github.com/mhasan/dancecamp/internal/config"
	"github.com/mhasan/dancecamp/internal/db"
	appMiddleware "github.com/mhasan/dancecamp/internal/middleware"
	pkgAuth "github.com/mhasan/dancecamp/internal/pkg/auth"
	"github.com/mhasan/dancecamp/internal/pkg/helpers"
	"github.com/mhasan/dancecamp/internal/pkg/logger"
	"github.com/mhasan/dancecamp/internal/pkg/payment"
	"github.com/mhasan/dancecamp/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService          *appServices.UserService
	ClassService         *appServices.ClassService
	CartService          *appServices.CartService
	InstructorService    *appServices.InstructorService
	SettlementService    *appServices.SettlementService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	ClassController      *appControllers.ClassController
	InstructorController *appControllers.InstructorController
	CartController       *appControllers.CartController
	PaymentController    *appControllers.PaymentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	AuthzService         *appAuth.AuthorizationService
	PaymentProvider      payment.Provider
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.ClassRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 1*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.PaymentProvider = payment.NewStripeProvider(cfg.Payment.StripeSecretKey)

	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.ClassService = appServices.NewClassService(deps.Repos.ClassRepository, deps.AuthzService)
	deps.CartService = appServices.NewCartService(deps.Repos.CartRepository, deps.Repos.ClassRepository)
	deps.InstructorService = appServices.NewInstructorService(deps.Repos.UserRepository, deps.Repos.ClassRepository)
	deps.SettlementService = appServices.NewSettlementService(
		deps.Repos.PaymentRepository,
		deps.Repos.ClassRepository,
		deps.PaymentProvider,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.AuthController = appControllers.NewAuthController(deps.JWTService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.InstructorController = appControllers.NewInstructorController(deps.InstructorService)
	deps.CartController = appControllers.NewCartController(deps.CartService)
	deps.PaymentController = appControllers.NewPaymentController(deps.SettlementService, cfg.Payment.Currency)

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

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ClassController,
		deps.InstructorController,
		deps.CartController,
		deps.PaymentController,
		deps.AuthMiddleware,
	)

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
