// Package classifierd implements the built-in demo classification server.
// It answers the analyze endpoint with fixed per-mode results so a panel
// can be exercised without the real inference backend.
package classifierd

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wlds/wlds-go/internal/classifier"
	"github.com/wlds/wlds-go/internal/logging"
	"github.com/wlds/wlds-go/internal/session"
)

// Server is the demo classifier HTTP server.
type Server struct {
	Echo   *echo.Echo
	logger *slog.Logger
}

// New creates the demo classifier server and registers its routes.
func New() *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	logger := logging.ForService("classifierd")
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{Echo: e, logger: logger}
	e.POST("/analyze/:mode", s.handleAnalyze)
	return s
}

// handleAnalyze returns the canned result for the requested mode. The
// uploaded media parts are accepted and ignored.
func (s *Server) handleAnalyze(c echo.Context) error {
	mode := session.Mode(c.Param("mode"))
	if !mode.Valid() {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown mode"})
	}

	result := classifier.DemoResult(mode)
	s.logger.Info("Returning demo classification",
		"mode", string(mode), "species", result.Species)
	return c.JSON(http.StatusOK, result)
}

// Start runs the server on the given listen address.
func (s *Server) Start(listen string) error {
	return s.Echo.Start(listen)
}
