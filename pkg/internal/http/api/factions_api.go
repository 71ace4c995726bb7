package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teccodex/chronicler/pkg/internal/services"
)

func listFactions(c *fiber.Ctx) error {
	items, err := services.ListFactions()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func getFaction(c *fiber.Ctx) error {
	alias := c.Params("faction")

	item, ok, err := services.GetFaction(alias)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no such faction: "+alias)
	}

	return c.JSON(item)
}
