//go:build !tinygo

// Package status serves the published display state over HTTP.
package status

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ardnew/weathermatrix/model"
)

// Display is the JSON form of model.Model.
type Display struct {
	Status      string    `json:"status"`
	Clock       string    `json:"clock"`
	ClockColor  string    `json:"clock_color"`
	Temperature string    `json:"temperature"`
	Units       string    `json:"units"`
	Icon        string    `json:"icon,omitempty"`
	IconIndex   *int      `json:"icon_index,omitempty"`
	LastFetch   time.Time `json:"last_fetch"`
	Retry       uint      `json:"retry"`
	LastError   string    `json:"last_error,omitempty"`
}

// New returns an app serving the state. It never modifies state.
func New(state *model.State) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weathermatrix",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Get("/display", func(c *fiber.Ctx) error {
		return c.JSON(convert(state.Peek()))
	})

	return app
}

func convert(m model.Model) Display {
	d := Display{
		Status:      m.Display.Status.String(),
		Clock:       m.Display.ClockText,
		ClockColor:  hex(m.Display.ClockColor),
		Temperature: m.Display.TempText,
		Units:       m.Units,
		Icon:        m.IconCode,
		LastFetch:   m.LastFetch,
		Retry:       m.Retry,
		LastError:   m.LastError,
	}
	if m.Display.IconVisible {
		i := m.Display.Icon
		d.IconIndex = &i
	}
	return d
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
