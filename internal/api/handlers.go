package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wlds/wlds-go/internal/analysis"
	"github.com/wlds/wlds-go/internal/capture"
	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/media"
	"github.com/wlds/wlds-go/internal/mode"
	"github.com/wlds/wlds-go/internal/session"
)

// StateResponse is the panel's aggregate display state.
type StateResponse struct {
	Mode        string           `json:"mode"`
	Visibility  mode.Visibility  `json:"visibility"`
	Viewport    capture.Viewport `json:"viewport"`
	IsRecording bool             `json:"isRecording"`
	IsScanning  bool             `json:"isScanning"`
	CameraOpen  bool             `json:"cameraOpen"`
	ScanCount   int              `json:"scanCount"`
	ScanStatus  string           `json:"scanStatus"`
	Clock       string           `json:"clock"`
	UptimeSec   int64            `json:"uptimeSec"`
	Theme       string           `json:"theme"`
	HasAudio    bool             `json:"hasAudio"`
	HasImage    bool             `json:"hasImage"`
}

// GetState returns the aggregate panel state.
func (c *Controller) GetState(ctx echo.Context) error {
	m, vis := c.Mode.Current()
	return ctx.JSON(http.StatusOK, StateResponse{
		Mode:        string(m),
		Visibility:  vis,
		Viewport:    c.Capture.Viewport(),
		IsRecording: c.Session.IsRecording(),
		IsScanning:  c.Session.IsScanning(),
		CameraOpen:  c.Capture.CameraOpen(),
		ScanCount:   c.Session.ScanCount(),
		ScanStatus:  c.Analysis.Status(),
		Clock:       clockLabel(time.Now()),
		UptimeSec:   int64(c.Session.Uptime().Seconds()),
		Theme:       c.Settings.Main.Theme,
		HasAudio:    c.Session.ScanAudio() != nil,
		HasImage:    c.Session.ScanImage() != nil,
	})
}

// ModeRequest selects an operating mode.
type ModeRequest struct {
	Mode string `json:"mode"`
}

// SetMode switches the operating mode.
func (c *Controller) SetMode(ctx echo.Context) error {
	var req ModeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	vis, err := c.Mode.Select(session.Mode(req.Mode))
	if err != nil {
		c.apiLogger.Warn("Mode select rejected", "mode", req.Mode, "error", err)
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	c.apiLogger.Info("Mode switched", "mode", req.Mode)
	return ctx.JSON(http.StatusOK, map[string]any{
		"mode":       req.Mode,
		"visibility": vis,
	})
}

// StartRecording begins the fixed-length acoustic sample recording.
func (c *Controller) StartRecording(ctx echo.Context) error {
	_, err := c.Capture.StartRecording(ctx.Request().Context())
	if err != nil {
		return c.captureError(ctx, err)
	}
	return ctx.JSON(http.StatusAccepted, c.Capture.RecordingProgress())
}

// GetRecordingProgress returns the recording countdown state.
func (c *Controller) GetRecordingProgress(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.Capture.RecordingProgress())
}

// OpenCamera starts a live camera session.
func (c *Controller) OpenCamera(ctx echo.Context) error {
	if err := c.Capture.OpenCamera(ctx.Request().Context()); err != nil {
		return c.captureError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"viewport": c.Capture.Viewport()})
}

// CapturePhoto freezes a frame into the photo buffer and releases the
// camera.
func (c *Controller) CapturePhoto(ctx echo.Context) error {
	if err := c.Capture.CapturePhoto(ctx.Request().Context()); err != nil {
		return c.captureError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"viewport": c.Capture.Viewport()})
}

// CloseCamera releases the camera session.
func (c *Controller) CloseCamera(ctx echo.Context) error {
	c.Capture.CloseCamera()
	return ctx.JSON(http.StatusOK, map[string]any{"viewport": c.Capture.Viewport()})
}

// UploadAudio fills the file-provided audio slot from a multipart upload.
func (c *Controller) UploadAudio(ctx echo.Context) error {
	blob, err := c.formFileBlob(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	c.Capture.LoadAudio(blob)
	return ctx.JSON(http.StatusOK, map[string]any{"filename": blob.Filename, "bytes": blob.Size()})
}

// UploadImage fills the file-provided image slot from a multipart upload.
func (c *Controller) UploadImage(ctx echo.Context) error {
	blob, err := c.formFileBlob(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	c.Capture.LoadImage(blob)
	return ctx.JSON(http.StatusOK, map[string]any{"filename": blob.Filename, "bytes": blob.Size()})
}

// RunScan triggers one scan cycle and returns the rendered display state.
func (c *Controller) RunScan(ctx echo.Context) error {
	state, err := c.Analysis.RunScan(ctx.Request().Context())
	if err != nil {
		if errors.Is(err, analysis.ErrScanInProgress) {
			return ctx.JSON(http.StatusConflict, map[string]string{"error": "scan already in progress"})
		}
		c.apiLogger.Error("Scan failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, state)
}

// GetLastResult returns the display state of the most recent scan.
func (c *Controller) GetLastResult(ctx echo.Context) error {
	result := c.Analysis.LastResult()
	if result == nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "no scan completed yet"})
	}
	return ctx.JSON(http.StatusOK, result)
}

// GetHistory returns the bounded detection history, newest first.
func (c *Controller) GetHistory(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.History.Entries())
}

// GetLog returns the full log feed in append order.
func (c *Controller) GetLog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.Feed.Entries())
}

// ClearLog destroys the log feed. There is no confirmation step.
func (c *Controller) ClearLog(ctx echo.Context) error {
	c.Feed.Clear()
	return ctx.NoContent(http.StatusNoContent)
}

// VisualizerResponse carries one animation frame of both visualizers.
type VisualizerResponse struct {
	WavePoints []float64         `json:"wavePoints"`
	WaveActive bool              `json:"waveActive"`
	RadarAngle float64           `json:"radarAngle"`
	RadarBlips []visualizerBlips `json:"radarBlips"`
	Scanning   bool              `json:"scanning"`
}

type visualizerBlips struct {
	Angle    float64 `json:"angle"`
	Distance float64 `json:"distance"`
	Size     float64 `json:"size"`
	Alpha    float64 `json:"alpha"`
}

// GetVisualizer returns the current visualizer frame for drawing.
func (c *Controller) GetVisualizer(ctx echo.Context) error {
	blips := c.Radar.Blips()
	out := make([]visualizerBlips, 0, len(blips))
	for _, b := range blips {
		out = append(out, visualizerBlips{
			Angle:    b.Angle,
			Distance: b.Distance,
			Size:     b.Size,
			Alpha:    b.Life / b.MaxLife,
		})
	}
	return ctx.JSON(http.StatusOK, VisualizerResponse{
		WavePoints: c.Waveform.Points(),
		WaveActive: c.Flags.Wave(),
		RadarAngle: c.Radar.Angle(),
		RadarBlips: out,
		Scanning:   c.Flags.Scan(),
	})
}

// ThemeRequest sets the persisted theme preference.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme returns the persisted theme preference.
func (c *Controller) GetTheme(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"theme": c.Settings.Main.Theme})
}

// SetTheme persists the theme preference.
func (c *Controller) SetTheme(ctx echo.Context) error {
	var req ThemeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := conf.SaveTheme(c.Settings, req.Theme); err != nil {
		c.apiLogger.Warn("Theme save rejected", "theme", req.Theme, "error", err)
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	c.apiLogger.Info("Theme saved", "theme", req.Theme)
	return ctx.JSON(http.StatusOK, map[string]string{"theme": req.Theme})
}

// formFileBlob reads the uploaded "file" part into a media blob.
func (c *Controller) formFileBlob(ctx echo.Context) (*media.Blob, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file part: %w", err)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &media.Blob{
		Data:       data,
		MimeType:   mimeType,
		Filename:   fileHeader.Filename,
		CapturedAt: time.Now(),
	}, nil
}

// captureError maps the capture error taxonomy onto HTTP statuses:
// permission refusals are 403, capture ordering violations are 409.
func (c *Controller) captureError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errors.ErrPermissionDenied):
		c.apiLogger.Warn("Device access denied", "error", err)
		return ctx.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, errors.ErrNoActiveCamera):
		c.apiLogger.Warn("Capture ordering violation", "error", err)
		return ctx.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		c.apiLogger.Error("Capture operation failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
