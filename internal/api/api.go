// Package api exposes the control panel operations over HTTP for the
// browser front-end.
package api

import (
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wlds/wlds-go/internal/analysis"
	"github.com/wlds/wlds-go/internal/capture"
	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/history"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/logging"
	"github.com/wlds/wlds-go/internal/mode"
	"github.com/wlds/wlds-go/internal/session"
	"github.com/wlds/wlds-go/internal/visualizer"
)

// Controller manages the panel API routes and handlers.
type Controller struct {
	Echo  *echo.Echo
	Group *echo.Group

	Settings *conf.Settings
	Session  *session.Session
	Mode     *mode.Controller
	Capture  *capture.Controller
	Analysis *analysis.Controller
	History  *history.Manager
	Feed     *logfeed.Feed
	Flags    *visualizer.Flags
	Waveform *visualizer.Waveform
	Radar    *visualizer.Radar

	apiLogger      *slog.Logger
	apiLoggerClose func() error
}

// New creates the API controller and registers all routes under /api/v1.
func New(settings *conf.Settings, sess *session.Session, modeCtl *mode.Controller, captureCtl *capture.Controller, analysisCtl *analysis.Controller, hist *history.Manager, feed *logfeed.Feed, flags *visualizer.Flags, wave *visualizer.Waveform, radar *visualizer.Radar) *Controller {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	apiLogger, closeFunc, err := logging.NewFileLogger(filepath.Join("logs", "api.log"), "api", slog.LevelInfo)
	if err != nil {
		log.Printf("Failed to initialize API file logger: %v. API logging disabled.", err)
		apiLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		closeFunc = func() error { return nil }
	}

	c := &Controller{
		Echo:           e,
		Settings:       settings,
		Session:        sess,
		Mode:           modeCtl,
		Capture:        captureCtl,
		Analysis:       analysisCtl,
		History:        hist,
		Feed:           feed,
		Flags:          flags,
		Waveform:       wave,
		Radar:          radar,
		apiLogger:      apiLogger,
		apiLoggerClose: closeFunc,
	}

	c.Group = e.Group("/api/v1")
	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	g := c.Group

	g.GET("/state", c.GetState)
	g.POST("/mode", c.SetMode)

	g.POST("/record", c.StartRecording)
	g.GET("/record/progress", c.GetRecordingProgress)

	g.POST("/camera/open", c.OpenCamera)
	g.POST("/camera/capture", c.CapturePhoto)
	g.POST("/camera/close", c.CloseCamera)

	g.POST("/upload/audio", c.UploadAudio)
	g.POST("/upload/image", c.UploadImage)

	g.POST("/scan", c.RunScan)
	g.GET("/scan/result", c.GetLastResult)

	g.GET("/history", c.GetHistory)
	g.GET("/log", c.GetLog)
	g.DELETE("/log", c.ClearLog)

	g.GET("/visualizer", c.GetVisualizer)

	g.GET("/settings/theme", c.GetTheme)
	g.PUT("/settings/theme", c.SetTheme)
}

// Start runs the API server on the given listen address.
func (c *Controller) Start(listen string) error {
	c.apiLogger.Info("Panel API starting", "listen", listen)
	return c.Echo.Start(listen)
}

// Shutdown closes the API log file and stops the server.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		if err := c.apiLoggerClose(); err != nil {
			log.Printf("Failed to close API log file: %v", err)
		}
	}
	_ = c.Echo.Close()
}

// clockLabel formats a wall-clock time the way the panel header shows it.
func clockLabel(t time.Time) string {
	return t.Format("15:04:05")
}
