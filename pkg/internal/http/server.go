package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/teccodex/chronicler/pkg/internal/http/admin"
	"github.com/teccodex/chronicler/pkg/internal/http/api"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Codex.Chronicler",
		AppName:               "Codex.Chronicler",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ErrorHandler:          renderError,
	})

	app.Use(cors.New(cors.Config{
		AllowCredentials: false,
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-TEC-API-KEY",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	admin.MapControllers(app, "/api/admin")
	api.MapAPIs(app, "/api")

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:   "invalid_request",
	fiber.StatusUnauthorized: "unauthorized",
	fiber.StatusForbidden:    "forbidden",
	fiber.StatusNotFound:     "not_found",
	fiber.StatusConflict:     "conflict",
}

// Errors go out as {code, message}; the message is whatever the handler
// said, never a stack trace or an internal path.
func renderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	code, ok := errorCodes[status]
	if !ok {
		code = "internal_error"
	}

	return c.Status(status).JSON(fiber.Map{
		"code":    code,
		"message": err.Error(),
	})
}
