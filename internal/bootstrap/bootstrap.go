// Package bootstrap wires the application together: configuration, logger,
// database, repositories, services, controllers and the router.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/controllers"
	"github.com/placenet/portal/internal/app/migrations"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/app/routes"
	"github.com/placenet/portal/internal/app/services"
	"github.com/placenet/portal/internal/config"
	"github.com/placenet/portal/internal/db"
	"github.com/placenet/portal/internal/middleware"
	"github.com/placenet/portal/internal/pkg/auth"
	"github.com/placenet/portal/internal/pkg/email"
	"github.com/placenet/portal/internal/pkg/filestore"
	"github.com/placenet/portal/internal/pkg/logger"
	"github.com/placenet/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *repositories.Repositories
	JWTService     *auth.JWTService
	EmailService   email.EmailService
	FileStore      *filestore.Store
	Ownership      *authz.OwnershipService
	AuthMiddleware *middleware.AuthMiddleware
	Controllers    routes.Controllers
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

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(dbPool, lgr)
	if err := migrator.Run(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Not fatal: the portal can run without the default admin.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	var err error
	deps.FileStore, err = filestore.NewStore(cfg.Provisioning.WorkDir, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.Ownership = authz.NewOwnershipService(deps.Repos.Question, deps.Repos.Review)

	authService := services.NewAuthService(deps.Repos.User, deps.Repos.Token, deps.JWTService, deps.EmailService, lgr)
	companyService := services.NewCompanyService(deps.Repos.Company, lgr)
	reviewService := services.NewReviewService(deps.Repos.Review, deps.Repos.Company, deps.Ownership, lgr)
	questionService := services.NewQuestionService(deps.Repos.Question, deps.Repos.Company, deps.Ownership, lgr)
	provisionService := services.NewProvisionService(deps.Repos.User, deps.EmailService, deps.FileStore, services.ProvisionConfig{
		GeneratorCommand: cfg.Provisioning.GeneratorCommand,
		GeneratorTimeout: cfg.GeneratorTimeout(),
		EmailSendDelay:   cfg.EmailSendDelay(),
	}, lgr)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Company:  controllers.NewCompanyController(companyService),
		Review:   controllers.NewReviewController(reviewService),
		Question: controllers.NewQuestionController(questionService),
		Admin:    controllers.NewAdminController(provisionService, authService, deps.FileStore, cfg.CleanupDelay()),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	routes.RegisterRoutes(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

// requestLogger logs each request with zerolog instead of gin's default
// writer.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
