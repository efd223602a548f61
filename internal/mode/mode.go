// Package mode owns the operating-mode state machine of the panel and the
// capture-section visibility contract it implies.
package mode

import (
	"fmt"
	"strings"

	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/session"
)

// Visibility describes which capture sections the active mode exposes.
// Audio shows only the audio section, Image only the image section and
// Fusion both side by side.
type Visibility struct {
	Audio bool `json:"audio"`
	Image bool `json:"image"`
}

// VisibilityFor returns the visibility contract for a mode.
func VisibilityFor(m session.Mode) Visibility {
	switch m {
	case session.ModeImage:
		return Visibility{Audio: false, Image: true}
	case session.ModeFusion:
		return Visibility{Audio: true, Image: true}
	default:
		return Visibility{Audio: true, Image: false}
	}
}

// Controller drives mode transitions triggered by explicit user selection.
// A transition has no side effects on in-flight recording or camera
// sessions.
type Controller struct {
	session *session.Session
	feed    *logfeed.Feed
}

// NewController creates a mode controller bound to the session state.
func NewController(sess *session.Session, feed *logfeed.Feed) *Controller {
	return &Controller{session: sess, feed: feed}
}

// Select switches to the given mode, updates the visibility contract and
// records the transition in the log feed.
func (c *Controller) Select(m session.Mode) (Visibility, error) {
	if !m.Valid() {
		return Visibility{}, errors.Newf("unknown mode %q", m).
			Component("mode").
			Category(errors.CategoryValidation).
			Context("mode", string(m)).
			Build()
	}

	c.session.SetMode(m)
	c.feed.Info(fmt.Sprintf("MODE SWITCHED → %s", strings.ToUpper(string(m))))
	return VisibilityFor(m), nil
}

// Current returns the active mode and its visibility contract.
func (c *Controller) Current() (session.Mode, Visibility) {
	m := c.session.Mode()
	return m, VisibilityFor(m)
}
