package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khen08/todoapp/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/login", h.Login)
	app.Get("/api/v1/me", h.RequireAuth(), h.Me)

	// Admin-only endpoints
	admin := app.Group("/api/v1/users", h.RequireRole(constant.RoleAdmin))
	admin.Post("/", h.CreateUser)
	admin.Get("/", h.GetAllUsers)
	admin.Patch("/:id", h.UpdateUser)
	admin.Delete("/:id", h.DeleteUser)
}
