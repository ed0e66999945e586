package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/khen08/todoapp/internal/auth/handler"
	apperror "github.com/khen08/todoapp/internal/errors"
	"github.com/khen08/todoapp/internal/task/domain"
	"github.com/khen08/todoapp/internal/task/dto"
	"github.com/khen08/todoapp/internal/task/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	tasks, err := h.taskService.List(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("error: list tasks for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error fetching tasks"})
	}

	out := make([]dto.TaskOutput, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskOutput(&tasks[i]))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	task, err := h.taskService.Get(c.Context(), c.Params("taskId"), claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error fetching task"})
	}
	return c.Status(fiber.StatusOK).JSON(toTaskOutput(task))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	var input dto.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.Create(c.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrItemsRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid required fields"})
		}
		log.Printf("error: create task for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error creating task"})
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskOutput(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	var input dto.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.Update(c.Context(), c.Params("taskId"), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrTaskNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
		case errors.Is(err, service.ErrTitleRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid required fields"})
		default:
			log.Printf("error: update task %s: %v", c.Params("taskId"), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error updating task"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(toTaskOutput(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	if err := h.taskService.Delete(c.Context(), c.Params("taskId"), claims.UserID); err != nil {
		if errors.Is(err, apperror.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
		}
		log.Printf("error: delete task %s: %v", c.Params("taskId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error deleting task"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "task deleted successfully"})
}

func (h *TaskHandler) ListTags(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	tags, err := h.taskService.ListTags(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("error: list tags for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error fetching tags"})
	}

	out := make([]dto.TagOutput, 0, len(tags))
	for _, tag := range tags {
		out = append(out, toTagOutput(tag))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TaskHandler) CreateTag(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	var input dto.CreateTagInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	tag, err := h.taskService.CreateTag(c.Context(), claims.UserID, input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(toTagOutput(*tag))
}

func (h *TaskHandler) DeleteTags(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)

	var input dto.DeleteTagsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.taskService.DeleteTags(c.Context(), claims.UserID, input.TagIDs); err != nil {
		log.Printf("error: delete tags for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error deleting tags"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func toTaskOutput(task *domain.Task) dto.TaskOutput {
	out := dto.TaskOutput{
		ID:        task.ID,
		Title:     task.Title,
		Color:     task.Color,
		Items:     make([]dto.TaskItemOutput, 0, len(task.Items)),
		Tags:      make([]dto.TagOutput, 0, len(task.Tags)),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	for _, item := range task.Items {
		out.Items = append(out.Items, dto.TaskItemOutput{
			ID:      item.ID,
			Name:    item.Name,
			Checked: item.Checked,
		})
	}
	for _, tag := range task.Tags {
		out.Tags = append(out.Tags, toTagOutput(tag))
	}
	return out
}

func toTagOutput(tag domain.Tag) dto.TagOutput {
	return dto.TagOutput{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
	}
}
