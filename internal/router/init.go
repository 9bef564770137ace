package router

import (
	userapp "github.com/oteixeira-dev/cadastro-api/internal/application"
	"github.com/oteixeira-dev/cadastro-api/internal/container"
	repouser "github.com/oteixeira-dev/cadastro-api/internal/domain/repository"
	pginfra "github.com/oteixeira-dev/cadastro-api/internal/infrastructure/postgres"
	handlers "github.com/oteixeira-dev/cadastro-api/internal/interface/http"
	"github.com/oteixeira-dev/cadastro-api/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler, container.GetJWT()))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(container.GetPGPool())))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
