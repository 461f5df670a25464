package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail200 answers a business-level failure the FE renders inline.
func fail200(c *fiber.Ctx, message string, extra ...fiber.Map) error {
	resp := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(extra) > 0 {
		for k, v := range extra[0] {
			resp[k] = v
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func fail500(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	uID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return uID, nil
}
