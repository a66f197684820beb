package router

import (
	"github.com/oksasatya/habit-tracker-api/internal/application"
	"github.com/oksasatya/habit-tracker-api/internal/container"
	pginfra "github.com/oksasatya/habit-tracker-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/habit-tracker-api/internal/interface/http"
	"github.com/oksasatya/habit-tracker-api/internal/router/modules"
)

func buildUserModule() (*modules.UserModule, *application.UserService) {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewUserService(repo, container.GetJWT(), container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())
	return modules.NewUserModule(handler, container.GetJWT(), service), service
}

func buildHabitModule(users *application.UserService) *modules.HabitModule {
	repo := pginfra.NewHabitRepository(container.GetPGPool())
	service := application.NewHabitService(repo, container.GetLogger())
	handler := handlers.NewHabitHandler(service, container.GetLogger())
	return modules.NewHabitModule(handler, container.GetJWT(), users)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userModule, userService := buildUserModule()
	r.Add(userModule)
	r.Add(buildHabitModule(userService))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
