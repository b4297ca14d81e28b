package v1

import (
	"net/http"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/config"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/middleware"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Gateway     domain.AuthGateway
	ProfileRepo domain.ProfileRepository
	SoilRepo    domain.SoilTestRepository
	AdminRepo   domain.AdminRepository

	ProfileUC  domain.ProfileUsecase
	MarketUC   domain.MarketUsecase
	Weather    domain.WeatherService
	AdvisoryUC domain.AdvisoryUsecase
	ChatUC     domain.ChatUsecase
	AdminUC    domain.AdminUsecase

	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// CORS must run before anything that can abort the request.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints carry their own strict limiter.
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.ProfileRepo))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	{
		NewAuthHandler(public, protected, deps.Gateway, deps.ProfileRepo)
		NewProfileHandler(protected, deps.ProfileUC)
		NewNavigationHandler(protected, deps.ProfileRepo)
		NewScreenHandler(protected, deps.ProfileRepo, deps.MarketUC, deps.Weather, deps.AdvisoryUC, deps.AdminRepo, deps.SoilRepo)
		NewMarketHandler(protected, deps.MarketUC)
		NewWeatherHandler(protected, deps.Weather)
		NewAdvisoryHandler(protected, deps.AdvisoryUC)
		NewChatHandler(protected, deps.ChatUC)
		NewAdminHandler(admin, deps.AdminUC)
	}

	return r
}
