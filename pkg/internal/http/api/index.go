package api

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		factions := api.Group("/factions").Name("Factions API")
		{
			factions.Get("/", listFactions)
			factions.Get("/:faction", getFaction)
		}

		crypto := api.Group("/crypto").Name("Crypto API")
		{
			crypto.Get("/", listCryptoData)
			crypto.Get("/events", listCryptoEvents)
		}

		api.Post("/bot-post", BotKeyMiddleware, createBotPost)
	}
}

// BotKeyMiddleware guards write endpoints with the shared bot secret. The
// digests are compared rather than the strings so the comparison stays
// constant-time regardless of key length.
func BotKeyMiddleware(c *fiber.Ctx) error {
	secret := viper.GetString("security.bot_api_key")
	if len(secret) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "bot api key is not configured")
	}

	given := sha256.Sum256([]byte(c.Get("X-TEC-API-KEY")))
	want := sha256.Sum256([]byte(secret))
	if subtle.ConstantTimeCompare(given[:], want[:]) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid api key")
	}

	return c.Next()
}
