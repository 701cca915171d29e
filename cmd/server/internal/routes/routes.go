package routes

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	servermiddleware "github.com/formintake/intake-api/cmd/server/internal/middleware"
	"github.com/formintake/intake-api/internal/validator"
)

// BuildEcho assembles the router with the shared middleware stack. An empty
// origins list allows any caller. uploadsDir, when set, is served read-only
// under /uploads so stored attachment references resolve.
func BuildEcho(logger *slog.Logger, origins []string, uploadsDir string) (*echo.Echo, error) {
	e := echo.New()

	validate := validator.Create()
	e.Validator = &validate

	corsConfig := middleware.DefaultCORSConfig
	if len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}

	e.Use(
		otelecho.Middleware("intake-api"),
		slogecho.NewWithConfig(logger, slogecho.Config{}),
		middleware.CORSWithConfig(corsConfig),
		servermiddleware.Time("time"),
	)

	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "Hello World") })

	if uploadsDir != "" {
		e.Static("/uploads", uploadsDir)
	}

	return e, nil
}
