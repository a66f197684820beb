package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/habit-tracker-api/internal/container"
	handlers "github.com/oksasatya/habit-tracker-api/internal/interface/http"
	"github.com/oksasatya/habit-tracker-api/internal/interface/middleware"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
)

// HabitModule registers the owner-scoped habit CRUD routes.
// Everything here sits behind bearer auth.

type HabitModule struct {
	Handler *handlers.HabitHandler
	JWT     *helpers.JWTManager
	Users   middleware.SubjectResolver
}

func NewHabitModule(h *handlers.HabitHandler, jwt *helpers.JWTManager, users middleware.SubjectResolver) *HabitModule {
	return &HabitModule{Handler: h, JWT: jwt, Users: users}
}

func (m *HabitModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT, m.Users))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/habits/", m.Handler.List)
		auth.POST("/habits/", m.Handler.Create)
		auth.PUT("/habits/:id/toggle", m.Handler.Toggle)
		auth.DELETE("/habits/:id", m.Handler.Delete)
	}
}
