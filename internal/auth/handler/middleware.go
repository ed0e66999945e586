package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/khen08/todoapp/internal/auth/service"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stores its claims on the
// request context.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := h.verifyRequest(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid token"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole additionally rejects tokens that do not carry the role.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := h.verifyRequest(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid token"})
		}
		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func (h *AuthHandler) verifyRequest(c *fiber.Ctx) (*service.JWTCustomClaims, bool) {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := h.tokenService.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func ClaimsFromCtx(c *fiber.Ctx) *service.JWTCustomClaims {
	claims, _ := c.Locals(claimsKey).(*service.JWTCustomClaims)
	return claims
}
