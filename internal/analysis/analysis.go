// Package analysis orchestrates one scan cycle: payload assembly,
// classifier submission, demo fallback and display-state transitions.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wlds/wlds-go/internal/classifier"
	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/presenter"
	"github.com/wlds/wlds-go/internal/session"
	"github.com/wlds/wlds-go/internal/visualizer"
)

// Scan status labels surfaced by the panel.
const (
	StatusStandby  = "STANDBY"
	StatusScanning = "SCANNING"
	StatusComplete = "COMPLETE"
)

// ErrScanInProgress reports that a scan was requested while one is already
// running. The request has no effect: no scan counter increment, no
// history entry.
var ErrScanInProgress = errors.Newf("scan already in progress").
	Component("analysis").
	Category(errors.CategoryState).
	Build()

// blipsPerScan is the number of radar detection dots spawned after a
// completed scan.
const blipsPerScan = 3

// Controller drives one scan cycle end to end. Re-entrancy is guarded by
// the session's scanning flag: at most one scan runs at a time.
type Controller struct {
	sess       *session.Session
	classifier classifier.Interface
	presenter  *presenter.Presenter
	feed       *logfeed.Feed
	flags      *visualizer.Flags
	radar      *visualizer.Radar

	mu         sync.RWMutex
	status     string
	lastResult *presenter.DisplayState
}

// NewController creates an analysis controller.
func NewController(sess *session.Session, cls classifier.Interface, pres *presenter.Presenter, feed *logfeed.Feed, flags *visualizer.Flags, radar *visualizer.Radar) *Controller {
	return &Controller{
		sess:       sess,
		classifier: cls,
		presenter:  pres,
		feed:       feed,
		flags:      flags,
		radar:      radar,
		status:     StatusStandby,
	}
}

// Status returns the current scan status label.
func (c *Controller) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// LastResult returns the display state of the most recent completed scan,
// or nil before the first scan.
func (c *Controller) LastResult() *presenter.DisplayState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastResult
}

// RunScan performs one scan: build the payload from the current session
// slots, submit it to the classifier, fall back to demo data on any
// failure, render the result and restore the idle display state. A call
// while a scan is in progress returns ErrScanInProgress and does nothing.
func (c *Controller) RunScan(ctx context.Context) (presenter.DisplayState, error) {
	scanNumber, ok := c.sess.TryStartScan()
	if !ok {
		return presenter.DisplayState{}, ErrScanInProgress
	}

	// Enter scanning state.
	c.setStatus(StatusScanning)
	c.flags.SetScan(true)
	c.flags.SetWave(true)

	mode := c.sess.Mode()
	c.feed.Warn(fmt.Sprintf("SCAN #%d INITIATED — MODE: %s", scanNumber, strings.ToUpper(string(mode))))
	c.feed.Info("LOADING AUDIO CNN...")

	// The exit step runs unconditionally, whatever the submission path did.
	defer func() {
		c.flags.SetScan(false)
		c.flags.SetWave(false)
		c.setStatus(StatusComplete)
		c.sess.EndScan()
	}()

	// File input takes precedence over device-captured blobs; an absent
	// modality is omitted from the payload.
	payload := classifier.Payload{
		Audio: c.sess.ScanAudio(),
		Image: c.sess.ScanImage(),
	}

	result, err := c.classifier.Analyze(ctx, mode, payload)
	if err != nil {
		// Never a hard failure: the panel always produces a displayable
		// result.
		c.feed.Warn("DEMO MODE — SERVER OFFLINE")
		result = classifier.DemoResult(mode)
	}

	state := c.presenter.Present(result, mode)

	c.mu.Lock()
	c.lastResult = &state
	c.mu.Unlock()

	for range blipsPerScan {
		c.radar.SpawnBlip()
	}

	return state, nil
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}
