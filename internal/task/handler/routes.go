package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the task and tag endpoints behind the given auth
// middleware.
func RegisterRoutes(app *fiber.App, h *TaskHandler, requireAuth fiber.Handler) {
	tasks := app.Group("/api/v1/tasks", requireAuth)
	tasks.Get("/", h.ListTasks)
	tasks.Post("/", h.CreateTask)
	tasks.Get("/:taskId", h.GetTask)
	tasks.Patch("/:taskId", h.UpdateTask)
	tasks.Delete("/:taskId", h.DeleteTask)

	tags := app.Group("/api/v1/tags", requireAuth)
	tags.Get("/", h.ListTags)
	tags.Post("/", h.CreateTag)
	tags.Delete("/", h.DeleteTags)
}
