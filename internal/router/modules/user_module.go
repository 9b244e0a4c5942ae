package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Lucas-Nascimentto/projeto-fan/internal/interface/http"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/interface/middleware"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// UserModule wires account HTTP handlers and auth middleware into routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/profile, PUT /api/profile
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
