package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/middleware"
	"github.com/pinkeep/pinkeep_app/internal/platform/config"
	"github.com/pinkeep/pinkeep_app/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware
	setupAPIV1Routes(r, cfg, services)
}

// registerAuthRoutes sets up the public credential endpoints. Login and the
// reset endpoints get an IP rate limit on top of the per-user limit the reset
// flow enforces internally.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth, cfg)

	// 5 requests per minute per IP on the credential-guessing surface.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/password-reset/request", limitMiddleware, h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", limitMiddleware, h.ConfirmPasswordReset)
		auth.GET("/password-reset/validate", h.ValidateResetToken)
	}
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	codec := utils.NewSessionTokenCodec(cfg.SessionTokenSecret)
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.SessionCookieName, codec, services.Session, services.APIToken))

	registerUserRoutes(v1, services)
	registerAPITokenRoutes(v1, services)
}

func registerUserRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services.User, services.Auth)

	users := v1.Group("/users")
	users.GET("/me", h.Me)
	users.PUT("/me/password", h.ChangePassword)
	users.PUT("/me/email", h.UpdateEmail)
}

func registerAPITokenRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAPITokenHandler(services.APIToken)

	tokens := v1.Group("/api-tokens")
	tokens.POST("", h.CreateToken)
	tokens.GET("", h.ListTokens)
	tokens.DELETE("/:tokenID", h.RevokeToken)
}
