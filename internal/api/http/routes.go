package httpapi

import (
	"bytes"
	_ "embed"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/temperature-dashboard/internal/dashboard"
	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

var validate = validator.New()

//go:embed index.html
var indexHTML []byte

// Settings are the display defaults handed to the page.
type Settings struct {
	DefaultUnit    temperature.Unit
	UpdateInterval time.Duration
}

// RegisterRoutes wires the dashboard handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, feed *temperature.Feed, settings Settings) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(indexHTML)
	})

	app.Get("/chart.png", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := dashboard.RenderChart(&buf, feed.Snapshot(), time.Local); err != nil {
			if errors.Is(err, dashboard.ErrNotEnoughData) {
				return fiber.NewError(fiber.StatusNotFound, "not enough readings for a chart yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Type("png")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"default_unit":     settings.DefaultUnit,
			"units":            temperature.Units,
			"interval_seconds": settings.UpdateInterval.Seconds(),
			"capacity":         feed.Capacity(),
			"source":           feed.SourceName(),
		})
	})

	v1.Get("/readings", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"capacity": feed.Capacity(),
			"readings": feed.Snapshot(),
		})
	})

	v1.Get("/readings/latest", func(c *fiber.Ctx) error {
		latest, err := feed.Latest()
		if err != nil {
			if errors.Is(err, temperature.ErrNoData) {
				return fiber.NewError(fiber.StatusNotFound, "no readings yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read latest reading")
		}
		return c.JSON(latest)
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		view, err := viewFromQuery(c, settings.DefaultUnit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(view.Frame(feed.Snapshot()))
	})

	v1.Get("/table", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"rows": dashboard.Table(feed.Snapshot()),
		})
	})

	v1.Get("/trend", func(c *fiber.Ctx) error {
		trend, ok := dashboard.FitTrend(feed.Snapshot())
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no trend yet: at least two readings are needed")
		}
		return c.JSON(trend)
	})
}

// unitQuery holds the optional unit selection of a request.
type unitQuery struct {
	Unit string `validate:"omitempty,oneof=Celsius Fahrenheit Kelvin"`
}

func viewFromQuery(c *fiber.Ctx, def temperature.Unit) (*dashboard.View, error) {
	q := unitQuery{Unit: c.Query("unit")}
	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	unit := def
	if q.Unit != "" {
		u, err := temperature.ParseUnit(q.Unit)
		if err != nil {
			return nil, err
		}
		unit = u
	}
	return dashboard.NewView(unit)
}
