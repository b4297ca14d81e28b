package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/config"
	_ "github.com/BhupenderNayak/krishi-unnati-app/docs" // Swagger spec registration
	v1 "github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/v1"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/gateway/supabase"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/repository/postgres"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/usecase"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/auth"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/database"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/redis"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Krishi Saathi API
// @version         1.0
// @description     Backend for the Krishi Saathi farmer dashboard.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting krishi saathi backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; middleware and caches degrade without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
		}
		defer redis.Close()
	}

	// 5. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	marketRepo := postgres.NewMarketRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	soilRepo := postgres.NewSoilTestRepository(dbPool)
	advisoryRepo := postgres.NewAdvisoryRepository(dbPool)

	// 6. Setup Supabase auth gateway
	gateway := supabase.NewClient(cfg.SupabaseUrl, cfg.SupabaseKey)

	// 7. Setup UseCases
	validate := validator.New()
	if err := validation.RegisterValidators(validate); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterValidators(v); err != nil {
			log.Fatalf("Failed to register binding validators: %v", err)
		}
	}

	profileUC := usecase.NewProfileUsecase(profileRepo, soilRepo, validate)
	marketUC := usecase.NewMarketUsecase(marketRepo, redis.Client(), time.Duration(cfg.PriceCacheTTLSeconds)*time.Second)
	weatherSvc := usecase.NewWeatherService()
	advisoryUC := usecase.NewAdvisoryUsecase(advisoryRepo)
	chatUC := usecase.NewChatUsecase()
	adminUC := usecase.NewAdminUsecase(adminRepo, profileRepo)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Gateway:      gateway,
		ProfileRepo:  profileRepo,
		SoilRepo:     soilRepo,
		AdminRepo:    adminRepo,
		ProfileUC:    profileUC,
		MarketUC:     marketUC,
		Weather:      weatherSvc,
		AdvisoryUC:   advisoryUC,
		ChatUC:       chatUC,
		AdminUC:      adminUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
