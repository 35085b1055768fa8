package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-directory/config"
	"github.com/oksasatya/go-employee-directory/internal/application"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	pginfra "github.com/oksasatya/go-employee-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-employee-directory/internal/infrastructure/search"
	"github.com/oksasatya/go-employee-directory/internal/infrastructure/storage"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
)

var demoEmployees = []map[string]string{
	{"first_name": "Ana", "last_name": "Lee", "email": "ana.lee@example.com", "position": "Engineer", "salary": "90000", "date_of_joining": "2024-01-15", "department": "R&D"},
	{"first_name": "Bo", "last_name": "Kim", "email": "bo.kim@example.com", "position": "Manager", "salary": "120000", "date_of_joining": "2022-06-01", "department": "Sales"},
	{"first_name": "Caro", "last_name": "Diaz", "email": "caro.diaz@example.com", "position": "Engineer", "salary": "95000", "date_of_joining": "2023-03-20", "department": "R&D"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	username, email, password := "demoUser", "demo@example.com", "password123"
	auth := application.NewAuthService(pginfra.NewUserRepository(pool), helpers.NewJWTManager(helpers.TokenConfig{Secret: cfg.JWTSecret}), logger, nil)
	if _, err := auth.Signup(ctx, application.SignupInput{Username: username, Email: email, Password: password}); err != nil {
		if !errors.Is(err, application.ErrConflict) {
			log.Fatalf("failed to seed user: %v", err)
		}
		logger.Infof("user %s already exists", email)
	} else {
		logger.Infof("seeded user: email=%s username=%s password=%s", email, username, password)
	}

	employees := pginfra.NewEmployeeRepository(pool)
	existing, err := employees.List(ctx)
	if err != nil {
		log.Fatalf("failed to list employees: %v", err)
	}
	if len(existing) > 0 {
		logger.Infof("%d employees present; skipping employee seed", len(existing))
		return
	}

	assets, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to open upload dir: %v", err)
	}
	// index the demo rows too so lookup finds them
	var index repo.EmployeeIndex
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to create elasticsearch client: %v", err)
		}
		index = search.NewEmployeeIndex(es, cfg.ESEmployeesIndex)
	}
	svc := application.NewEmployeeService(employees, assets, index, logger)
	for _, fields := range demoEmployees {
		e, err := svc.Create(ctx, fields, nil)
		if err != nil {
			log.Fatalf("failed to seed employee %s: %v", fields["email"], err)
		}
		helpers.LogInfo(logger, "seeded employee", logrus.Fields{"id": e.ID, "email": e.Email})
	}
}
