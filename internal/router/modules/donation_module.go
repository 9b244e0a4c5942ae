package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Lucas-Nascimentto/projeto-fan/internal/interface/http"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/interface/middleware"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// DonationModule wires the catalog routes. Everything is protected:
// browsing requires an identity because listings exclude the caller's
// own postings.
type DonationModule struct {
	Handler *handlers.DonationHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewDonationModule(h *handlers.DonationHandler, jwt *helpers.JWTManager, rdb *redis.Client) *DonationModule {
	return &DonationModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *DonationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/donations", m.Handler.Create)
		auth.GET("/donations", m.Handler.ListAvailable)
		auth.GET("/donations/mine", m.Handler.ListMine)
		auth.GET("/donations/search", m.Handler.Search)
		auth.PUT("/donations/:id", m.Handler.Update)
		auth.DELETE("/donations/:id", m.Handler.Delete)
	}
}
