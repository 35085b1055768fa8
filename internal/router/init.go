package router

import (
	"context"

	"github.com/oksasatya/go-employee-directory/internal/application"
	"github.com/oksasatya/go-employee-directory/internal/container"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	pginfra "github.com/oksasatya/go-employee-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-employee-directory/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-employee-directory/internal/interface/http"
	"github.com/oksasatya/go-employee-directory/internal/router/modules"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
)

type UserModuleDeps struct {
	Repo    repo.UserRepository
	Service *application.AuthService
	Handler *handlers.UserHandler
}

type EmployeeModuleDeps struct {
	Repo    repo.EmployeeRepository
	Service *application.EmployeeService
	Handler *handlers.EmployeeHandler
}

func buildUserDeps() UserModuleDeps {
	r := pginfra.NewUserRepository(container.GetPGPool())

	// a nil *RabbitPublisher must not become a non-nil interface
	var jobs application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		jobs = pub
	}
	service := application.NewAuthService(r, container.GetJWT(), container.GetLogger(), jobs)

	return UserModuleDeps{
		Repo:    r,
		Service: service,
		Handler: handlers.NewUserHandler(service, container.GetLogger()),
	}
}

func buildEmployeeDeps() EmployeeModuleDeps {
	r := pginfra.NewEmployeeRepository(container.GetPGPool())

	var index repo.EmployeeIndex
	if es := container.GetES(); es != nil {
		index = search.NewEmployeeIndex(es, container.GetConfig().ESEmployeesIndex)
	}
	service := application.NewEmployeeService(r, container.GetAssetStore(), index, container.GetLogger())

	return EmployeeModuleDeps{
		Repo:    r,
		Service: service,
		Handler: handlers.NewEmployeeHandler(service, container.GetLogger(), container.GetConfig().UploadMaxBytes),
	}
}

func healthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{
		"postgres": func(ctx context.Context) error { return container.GetPGPool().Ping(ctx) },
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	return checks
}

// InitModules builds every feature module from the container and adds it to
// the registry. Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	limiter := container.GetRedis()
	if !cfg.RateLimitEnabled {
		limiter = nil
	}

	userDeps := buildUserDeps()
	employeeDeps := buildEmployeeDeps()

	r.Add(modules.NewUserModule(userDeps.Handler, limiter))
	r.Add(modules.NewEmployeeModule(employeeDeps.Handler, container.GetJWT(), limiter))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}

	r.AddRoot(modules.NewPublicModule(
		handlers.NewAssetHandler(container.GetAssetStore(), container.GetLogger()),
		handlers.NewHealthHandler(healthChecks()),
	))
}
