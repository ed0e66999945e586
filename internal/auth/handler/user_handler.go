package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/khen08/todoapp/internal/auth/domain"
	"github.com/khen08/todoapp/internal/auth/dto"
	autherror "github.com/khen08/todoapp/internal/errors"
)

func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var input dto.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	user, err := h.userService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrUsernameAlreadyInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(toUserOutput(user))
}

func (h *AuthHandler) GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "5"))

	filter := domain.UserFilter{
		Role:     c.Query("role"),
		OrderBy:  c.Query("order_by", "name"),
		Order:    c.Query("order", "asc"),
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := h.userService.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	out := dto.UserListOutput{
		Users:    make([]dto.UserOutput, 0, len(users)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for i := range users {
		out.Users = append(out.Users, toUserOutput(&users[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, autherror.ErrUsernameAlreadyInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(toUserOutput(user))
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "user deleted"})
}
