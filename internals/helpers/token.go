package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nhatro_backend/internals/constants"
)

// GetUserIDFromLocals reads the user id the auth middleware stored on the
// request context.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) (constants.Role, error) {
	raw, ok := c.Locals("user_role").(string)
	if !ok || raw == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role")
	}
	role, err := constants.ParseRole(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusForbidden, "Forbidden - unknown role")
	}
	return role, nil
}
