package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/session"
)

func TestVisibilityFor(t *testing.T) {
	tests := []struct {
		mode session.Mode
		want Visibility
	}{
		{session.ModeAudio, Visibility{Audio: true, Image: false}},
		{session.ModeImage, Visibility{Audio: false, Image: true}},
		{session.ModeFusion, Visibility{Audio: true, Image: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, VisibilityFor(tt.mode))
		})
	}
}

func TestSelectAllTransitions(t *testing.T) {
	modes := []session.Mode{session.ModeAudio, session.ModeImage, session.ModeFusion}

	for _, from := range modes {
		for _, to := range modes {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				sess := session.New()
				feed := logfeed.New(nil)
				c := NewController(sess, feed)

				_, err := c.Select(from)
				require.NoError(t, err)

				vis, err := c.Select(to)
				require.NoError(t, err)
				assert.Equal(t, VisibilityFor(to), vis)

				gotMode, gotVis := c.Current()
				assert.Equal(t, to, gotMode)
				assert.Equal(t, vis, gotVis)
			})
		}
	}
}

func TestSelectLogsTransition(t *testing.T) {
	sess := session.New()
	feed := logfeed.New(nil)
	c := NewController(sess, feed)

	_, err := c.Select(session.ModeFusion)
	require.NoError(t, err)

	entries := feed.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "MODE SWITCHED → FUSION", entries[0].Message)
	assert.Equal(t, logfeed.LevelInfo, entries[0].Level)
}

func TestSelectInvalidMode(t *testing.T) {
	sess := session.New()
	feed := logfeed.New(nil)
	c := NewController(sess, feed)

	_, err := c.Select(session.Mode("thermal"))
	require.Error(t, err)
	assert.Equal(t, session.ModeAudio, sess.Mode(), "invalid selection must not change the mode")
	assert.Zero(t, feed.Len(), "invalid selection must not be logged to the feed")
}

func TestSelectDoesNotTouchDeviceState(t *testing.T) {
	sess := session.New()
	feed := logfeed.New(nil)
	c := NewController(sess, feed)

	require.True(t, sess.TryStartRecording())
	_, err := c.Select(session.ModeImage)
	require.NoError(t, err)
	assert.True(t, sess.IsRecording(), "mode switch must not stop an in-flight recording")
}
