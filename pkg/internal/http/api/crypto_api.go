package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teccodex/chronicler/pkg/internal/services"
)

func listCryptoData(c *fiber.Ctx) error {
	items, err := services.ListTokens()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if chain := c.Query("chain"); len(chain) > 0 {
		items = services.FilterTokensWithNetwork(items, chain)
	}

	return c.JSON(items)
}

func listCryptoEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)

	items, err := services.ListRecentCryptoEvents(limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}
