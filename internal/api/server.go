package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	FrontendURL    string
	LogRequests    bool
	GeneratorReady bool
}

// StatusResponse reports service liveness and generator readiness.
type StatusResponse struct {
	Service             string `json:"service"`
	Status              string `json:"status"`
	GeneratorConfigured bool   `json:"generator_configured"`
}

// NewServer builds the echo instance with all route groups registered.
func NewServer(opts Options, tok tokenSvc, mail profileSvc, svc workflowSvc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())

	if opts.LogRequests {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "${time_rfc3339} ${method} ${uri} ${status} ${latency_human}\n",
		}))
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
	}))

	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, StatusResponse{
			Service:             "draftdesk",
			Status:              "active",
			GeneratorConfigured: opts.GeneratorReady,
		})
	})

	NewAuthGroup(e.Group(""), tok, mail, opts.FrontendURL)
	NewEmailGroup(e.Group("/emails"), svc)

	return e
}
