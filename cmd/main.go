package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khen08/todoapp/config"
	"github.com/khen08/todoapp/db"
	authhandler "github.com/khen08/todoapp/internal/auth/handler"
	authrepo "github.com/khen08/todoapp/internal/auth/repository/postgres"
	authservice "github.com/khen08/todoapp/internal/auth/service"
	taskhandler "github.com/khen08/todoapp/internal/task/handler"
	taskrepo "github.com/khen08/todoapp/internal/task/repository/postgres"
	taskservice "github.com/khen08/todoapp/internal/task/service"
)

func main() {
	cfg := config.Load()

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	defer dbPool.Close()

	if err := db.EnsureSchema(context.Background(), dbPool); err != nil {
		log.Printf("Warning: failed ensuring tables (may already exist): %v", err)
	}

	userRepo := authrepo.NewPostgresRepository(dbPool)
	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	gate := authservice.NewGate(userRepo, authservice.BcryptVerifier{})
	userService := authservice.NewUserService(userRepo)
	authHandler := authhandler.NewAuthHandler(gate, userService, tokenService)

	taskRepo := taskrepo.NewPostgresRepository(dbPool)
	taskService := taskservice.NewTaskService(taskRepo)
	taskHandler := taskhandler.NewTaskHandler(taskService)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	authhandler.RegisterRoutes(app, authHandler)
	taskhandler.RegisterRoutes(app, taskHandler, authHandler.RequireAuth())

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
