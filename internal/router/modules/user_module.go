package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/habit-tracker-api/internal/container"
	handlers "github.com/oksasatya/habit-tracker-api/internal/interface/http"
	"github.com/oksasatya/habit-tracker-api/internal/interface/middleware"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
)

// UserModule wires account HTTP handlers and bearer auth into routes
// Public: POST /token, POST /users/
// Protected: GET /users/me/

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   middleware.SubjectResolver
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users middleware.SubjectResolver) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)           // 10 req/min per IP
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)  // 5 req/min per IP

	rg.POST("/token", tokenLimiter, m.Handler.Token)
	rg.POST("/users/", registerLimiter, m.Handler.CreateUser)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))
	{
		auth.GET("/users/me/", m.Handler.Me)
	}
}
