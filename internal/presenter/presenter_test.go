package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/classifier"
	"github.com/wlds/wlds-go/internal/history"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/session"
)

func TestThreatLabelBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       string
	}{
		{"well_above_verified", 0.95, LabelVerified},
		{"just_above_verified", 0.901, LabelVerified},
		{"exactly_090_is_probable", 0.90, LabelProbable},
		{"mid_probable", 0.80, LabelProbable},
		{"just_above_uncertain", 0.701, LabelProbable},
		{"exactly_070_is_uncertain", 0.70, LabelUncertain},
		{"low", 0.30, LabelUncertain},
		{"zero", 0, LabelUncertain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThreatLabel(tt.confidence))
		})
	}
}

func TestBarsForWeights(t *testing.T) {
	tests := []struct {
		name       string
		mode       session.Mode
		confidence float64
		want       Bars
	}{
		{
			name:       "audio",
			mode:       session.ModeAudio,
			confidence: 0.5,
			want:       Bars{Audio: 50, Image: 0, Distance: 38, Fusion: 0},
		},
		{
			name:       "image",
			mode:       session.ModeImage,
			confidence: 0.5,
			want:       Bars{Audio: 0, Image: 50, Distance: 35, Fusion: 0},
		},
		{
			name:       "fusion",
			mode:       session.ModeFusion,
			confidence: 1.0,
			want:       Bars{Audio: 87, Image: 91, Distance: 76, Fusion: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BarsFor(tt.mode, tt.confidence)
			assert.InDelta(t, tt.want.Audio, got.Audio, 0.001)
			assert.InDelta(t, tt.want.Image, got.Image, 0.001)
			assert.InDelta(t, tt.want.Distance, got.Distance, 0.001)
			assert.InDelta(t, tt.want.Fusion, got.Fusion, 0.001)
		})
	}
}

func TestBarsForClamping(t *testing.T) {
	// Confidence above 1.0 must never push a bar past 100 percent.
	got := BarsFor(session.ModeFusion, 1.4)
	assert.LessOrEqual(t, got.Audio, 100.0)
	assert.LessOrEqual(t, got.Image, 100.0)
	assert.LessOrEqual(t, got.Distance, 100.0)
	assert.Equal(t, 100.0, got.Fusion)

	got = BarsFor(session.ModeAudio, -0.5)
	assert.Equal(t, 0.0, got.Audio)
	assert.Equal(t, 0.0, got.Distance)
}

func TestPresentFullResult(t *testing.T) {
	hist := history.NewManager(10)
	feed := logfeed.New(nil)
	p := New(hist, feed)

	dist := 18.4
	result := classifier.Result{
		Species:    "Indian Sparrow",
		Type:       "BIRD",
		Confidence: 0.87,
		Distance:   &dist,
	}

	state := p.Present(result, session.ModeAudio)

	assert.Equal(t, "INDIAN SPARROW", state.Species)
	assert.Equal(t, "CLASS: BIRD", state.SpeciesType)
	assert.InDelta(t, 87.0, state.ConfidencePct, 0.001)
	assert.Equal(t, LabelProbable, state.ThreatLabel)
	assert.Equal(t, "18.4 m", state.DistanceLabel)
	assert.Equal(t, "AUDIO", state.Mode)
	assert.Contains(t, state.RawJSON, `"species": "Indian Sparrow"`)

	require.Equal(t, 1, hist.Len())
	assert.Equal(t, "Indian Sparrow", hist.Entries()[0].Species)

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "SPECIES IDENTIFIED: INDIAN SPARROW", entries[0].Message)
	assert.Equal(t, "CONFIDENCE: 87.0%  DISTANCE: 18.4m", entries[1].Message)
}

func TestPresentDefaults(t *testing.T) {
	hist := history.NewManager(10)
	feed := logfeed.New(nil)
	p := New(hist, feed)

	state := p.Present(classifier.Result{}, session.ModeImage)

	assert.Equal(t, "UNKNOWN", state.Species)
	assert.Equal(t, "CLASS: —", state.SpeciesType)
	assert.Equal(t, "— m", state.DistanceLabel)
	assert.Equal(t, LabelUncertain, state.ThreatLabel)

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[1].Message, "DISTANCE: N/A")
}
