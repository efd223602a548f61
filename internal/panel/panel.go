// Package panel wires the control panel daemon together and runs it.
package panel

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wlds/wlds-go/internal/analysis"
	"github.com/wlds/wlds-go/internal/api"
	"github.com/wlds/wlds-go/internal/capture"
	"github.com/wlds/wlds-go/internal/classifier"
	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/history"
	"github.com/wlds/wlds-go/internal/httpclient"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/logging"
	"github.com/wlds/wlds-go/internal/mode"
	"github.com/wlds/wlds-go/internal/presenter"
	"github.com/wlds/wlds-go/internal/session"
	"github.com/wlds/wlds-go/internal/visualizer"
)

// tickInterval drives the waveform and radar animations.
const tickInterval = 50 * time.Millisecond

// Run starts the panel daemon and blocks until SIGINT or SIGTERM.
func Run(settings *conf.Settings) error {
	sess := session.New()
	feed := logfeed.New(logging.ForService("panel"))
	hist := history.NewManager(settings.Panel.HistoryLimit)

	flags := &visualizer.Flags{}
	wave := visualizer.NewWaveform(rand.NewSource(time.Now().UnixNano()))
	radar := visualizer.NewRadar(rand.NewSource(time.Now().UnixNano()))

	camera := capture.NewSnapshotCamera(settings.Capture.Camera.SnapshotURL, httpclient.New(nil))
	captureCtl := capture.NewController(sess, feed, flags,
		func() capture.AudioSource {
			return capture.NewMalgoSource(settings.Capture.Audio.Source)
		}, camera)

	cls := classifier.New(settings.Classifier.URL)
	pres := presenter.New(hist, feed)
	analysisCtl := analysis.NewController(sess, cls, pres, feed, flags, radar)
	modeCtl := mode.NewController(sess, feed)

	apiCtl := api.New(settings, sess, modeCtl, captureCtl, analysisCtl, hist, feed, flags, wave, radar)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go visualizer.Run(ctx, tickInterval, flags, wave, radar)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiCtl.Start(settings.Panel.Listen)
	}()

	logging.Info("Panel started", "listen", settings.Panel.Listen,
		"classifier", settings.Classifier.URL)

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received")
	case err := <-errCh:
		runErr = err
	}

	apiCtl.Shutdown()
	captureCtl.Close()
	cls.Close()
	return runErr
}
