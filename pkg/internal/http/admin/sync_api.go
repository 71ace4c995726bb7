package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/teccodex/chronicler/pkg/internal/services"
)

func adminTriggerSync(c *fiber.Ctx) error {
	if err := services.TriggerAgentSync(); err != nil {
		if errors.Is(err, services.ErrSyncAlreadyRunning) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusAccepted)
}
