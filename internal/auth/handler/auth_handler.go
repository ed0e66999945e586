package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/khen08/todoapp/internal/auth/domain"
	"github.com/khen08/todoapp/internal/auth/dto"
	"github.com/khen08/todoapp/internal/auth/service"
	autherror "github.com/khen08/todoapp/internal/errors"
)

const (
	msgInvalidCredentials = "invalid username or password"
	msgAccountLocked      = "account is locked. try again later"
)

type AuthHandler struct {
	gate         *service.Gate
	userService  *service.UserService
	tokenService service.TokenGenerator
}

func NewAuthHandler(gate *service.Gate, userService *service.UserService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{
		gate:         gate,
		userService:  userService,
		tokenService: tokenService,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	input.IPAddress = c.IP()

	outcome, err := h.gate.Authenticate(c.Context(), input.Username, input.Password, input.IPAddress)
	if err != nil {
		log.Printf("error: authenticate %q: %v", input.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		// fall through to token issuance below
	case domain.OutcomeInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidCredentials})
	case domain.OutcomeInvalidCredentials:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msgInvalidCredentials})
	case domain.OutcomeLocked, domain.OutcomeLockedNewly:
		// The two lockout outcomes stay distinct in the gate's contract,
		// but the user-facing text is identical for both.
		return c.Status(fiber.StatusLocked).JSON(fiber.Map{"error": msgAccountLocked})
	}

	token, _, err := h.tokenService.Generate(outcome.UserID, outcome.Username, outcome.Role)
	if err != nil {
		log.Printf("error: generate token for %q: %v", outcome.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	user, err := h.userService.GetByID(c.Context(), outcome.UserID)
	if err != nil {
		log.Printf("error: load user %q after login: %v", outcome.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Token: token,
		User:  toUserOutput(user),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := ClaimsFromCtx(c)
	user, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusOK).JSON(toUserOutput(user))
}

func toUserOutput(user *domain.User) dto.UserOutput {
	return dto.UserOutput{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
