package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teccodex/chronicler/pkg/internal/http/api"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL)
	{
		admin.Post("/sync", api.BotKeyMiddleware, adminTriggerSync)
	}
}
