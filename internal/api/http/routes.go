package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/classy-weather/internal/weather"
)

var validate = validator.New()

// Controller is the part of weather.Controller the HTTP layer drives.
type Controller interface {
	SetLocation(text string)
	Refresh() bool
	Snapshot() weather.FetchState
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, ctrl Controller) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return c.JSON(weather.Present(ctrl.Snapshot()))
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctrl.SetLocation(req.Location)
		return c.Status(fiber.StatusAccepted).JSON(weather.Present(ctrl.Snapshot()))
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		if !ctrl.Refresh() {
			return fiber.NewError(fiber.StatusConflict, "no location to refresh")
		}
		return c.Status(fiber.StatusAccepted).JSON(weather.Present(ctrl.Snapshot()))
	})
}

// locationRequest is the body of PUT /api/v1/location. An empty or one
// character location is valid and clears the forecast.
type locationRequest struct {
	Location string `json:"location" validate:"max=100"`
}
