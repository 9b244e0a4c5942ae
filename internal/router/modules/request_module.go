package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Lucas-Nascimentto/projeto-fan/internal/interface/http"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/interface/middleware"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// RequestModule wires the donation-request ledger routes.
type RequestModule struct {
	Handler *handlers.RequestHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewRequestModule(h *handlers.RequestHandler, jwt *helpers.JWTManager, rdb *redis.Client) *RequestModule {
	return &RequestModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *RequestModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/requests", m.Handler.Submit)
		auth.GET("/requests/sent", m.Handler.ListSent)
		auth.GET("/requests/received", m.Handler.ListReceived)
		auth.PATCH("/requests/:id", m.Handler.Decide)
	}
}
