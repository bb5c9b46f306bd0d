package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prateekh777/professional-website/config"
	"github.com/prateekh777/professional-website/internal/delivery/http/middleware"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/internal/usecase"
	"github.com/prateekh777/professional-website/pkg/auth"
	"github.com/prateekh777/professional-website/pkg/security"
)

type RouterDeps struct {
	Config    *config.Config
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	ContentUC domain.ContentUsecase // nil when DATABASE_URL is unset
	MediaUC   domain.MediaUsecase
	// GlobalLimiter caps all /api traffic per IP; nil disables it
	GlobalLimiter domain.RateLimiter
	Tokens        *auth.TokenService
	Security      *security.SecurityLogger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		// SetTrustedProxies only fails on malformed CIDRs/IPs
		panic(err)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.HealthUC != nil {
		NewHealthHandler(api, deps.HealthUC)
	}

	public := api.Group("")
	if deps.GlobalLimiter != nil {
		public.Use(middleware.RateLimitMiddleware(deps.GlobalLimiter, middleware.GlobalRateLimitConfig(), deps.Security))
	}

	NewContactHandler(public, deps.ContactUC)

	admin := public.Group("")
	admin.Use(middleware.AdminAuth(deps.Tokens, deps.Security))
	{
		if deps.ContentUC != nil {
			NewContentHandler(public, deps.ContentUC)
			NewSectionHandler(public, admin, deps.ContentUC)
		}
		if deps.MediaUC != nil {
			NewMediaHandler(admin, deps.MediaUC)
		}
	}

	return r
}
