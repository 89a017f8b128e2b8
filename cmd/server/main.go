package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lend-circle.backend/internal/config"
	"lend-circle.backend/internal/infrastructure/repositories"
	"lend-circle.backend/internal/interfaces/http/handlers"
	"lend-circle.backend/internal/interfaces/http/middleware"
	"lend-circle.backend/internal/usecases"
	"lend-circle.backend/pkg/jwt"
	"lend-circle.backend/pkg/logger"
	"lend-circle.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	groupUsecase := usecases.NewGroupUsecase(groupRepo, userRepo, uow)
	portfolioUsecase := usecases.NewPortfolioUsecase(portfolioRepo)
	loanLedger := usecases.NewLoanLedger(loanRepo)
	lendingUsecase := usecases.NewLendingUsecase(loanLedger, groupUsecase, portfolioRepo, userRepo, uow, nil)
	lendingUsecase.SetRiskThreshold(cfg.Lending.LiquidationThreshold)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore)
	groupHandler := handlers.NewGroupHandler(groupUsecase)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioUsecase)
	lendingHandler := handlers.NewLendingHandler(lendingUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		groupHandler:     groupHandler,
		portfolioHandler: portfolioHandler,
		lendingHandler:   lendingHandler,
		authMiddleware:   authMiddleware,
	})

	// Start server
	log.Printf("🚀 Lend-Circle Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
