package api

import (
	"strings"

	"github.com/gofiber/contrib/fiberzerolog"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// ServerOptions configures the API server
type ServerOptions struct {
	Address     string
	CORSOrigins []string
	// BodyLimit is the largest accepted request body in bytes
	BodyLimit int
}

// NewApp creates the fiber application serving the import API
func NewApp(handler *ImportHandler, opts ServerOptions) *fiber.App {
	apiLogger := log.With().Str("type", "api").Logger()

	config := fiber.Config{
		ServerHeader: "wsimport",
		AppName:      "wsimport API",
	}
	if opts.BodyLimit > 0 {
		config.BodyLimit = opts.BodyLimit
	}
	app := fiber.New(config)

	app.Use(recover.New())
	if len(opts.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.CORSOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}
	app.Use(fiberzerolog.New(fiberzerolog.Config{
		Logger: &apiLogger,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API Running")
	})

	api := app.Group("/api/v1")
	api.Post("/import", handler.ImportMetadata)

	return app
}

// StartAPI serves the API until the listener fails
func StartAPI(handler *ImportHandler, opts ServerOptions) error {
	app := NewApp(handler, opts)
	log.Info().Str("address", opts.Address).Msg("Starting the API")
	return app.Listen(opts.Address)
}
