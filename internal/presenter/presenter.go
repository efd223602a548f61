// Package presenter maps classification results onto the panel's display
// fields, confidence bars and detection history.
package presenter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wlds/wlds-go/internal/classifier"
	"github.com/wlds/wlds-go/internal/history"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/session"
)

// Threat labels derived from confidence. The thresholds are strict
// greater-than comparisons: 0.9 exactly is PROBABLE, 0.7 exactly is
// UNCERTAIN.
const (
	LabelVerified  = "VERIFIED"
	LabelProbable  = "PROBABLE"
	LabelUncertain = "UNCERTAIN"
)

// Bars are the per-modality confidence bar values in percent, each clamped
// to 100.
type Bars struct {
	Audio    float64 `json:"audio"`
	Image    float64 `json:"image"`
	Distance float64 `json:"distance"`
	Fusion   float64 `json:"fusion"`
}

// DisplayState is the rendered form of one classification result.
type DisplayState struct {
	Species       string  `json:"species"`
	SpeciesType   string  `json:"speciesType"`
	ConfidencePct float64 `json:"confidencePct"`
	ThreatLabel   string  `json:"threatLabel"`
	DistanceLabel string  `json:"distanceLabel"`
	Mode          string  `json:"mode"`
	Bars          Bars    `json:"bars"`
	RawJSON       string  `json:"rawJson"`
}

// Presenter renders results and forwards them to the history and log feed.
type Presenter struct {
	history *history.Manager
	feed    *logfeed.Feed
}

// New creates a presenter.
func New(hist *history.Manager, feed *logfeed.Feed) *Presenter {
	return &Presenter{history: hist, feed: feed}
}

// ThreatLabel classifies a confidence value.
func ThreatLabel(confidence float64) string {
	switch {
	case confidence > 0.9:
		return LabelVerified
	case confidence > 0.7:
		return LabelProbable
	default:
		return LabelUncertain
	}
}

// BarsFor derives the four confidence bar values for a mode. The weights
// are fixed per modality; every value is clamped to 100 percent.
func BarsFor(mode session.Mode, confidence float64) Bars {
	var b Bars
	switch mode {
	case session.ModeImage:
		b = Bars{
			Image:    confidence,
			Distance: confidence * 0.70,
		}
	case session.ModeFusion:
		b = Bars{
			Audio:    confidence * 0.87,
			Image:    confidence * 0.91,
			Distance: confidence * 0.76,
			Fusion:   confidence,
		}
	default: // audio
		b = Bars{
			Audio:    confidence,
			Distance: confidence * 0.76,
		}
	}
	b.Audio = clampPct(b.Audio)
	b.Image = clampPct(b.Image)
	b.Distance = clampPct(b.Distance)
	b.Fusion = clampPct(b.Fusion)
	return b
}

func clampPct(weighted float64) float64 {
	pct := weighted * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Present renders a result for the active mode, records it in the history
// and emits the identification and confidence log lines.
func (p *Presenter) Present(result classifier.Result, mode session.Mode) DisplayState {
	species := result.Species
	if species == "" {
		species = "UNKNOWN"
	}
	speciesType := result.Type
	if speciesType == "" {
		speciesType = "—"
	}
	confidence := result.Confidence

	distanceLabel := "— m"
	distanceLog := "N/A"
	if dist, ok := result.DistanceMeters(); ok {
		distanceLabel = fmt.Sprintf("%.1f m", dist)
		distanceLog = fmt.Sprintf("%.1fm", dist)
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		raw = []byte("{}")
	}

	state := DisplayState{
		Species:       strings.ToUpper(species),
		SpeciesType:   fmt.Sprintf("CLASS: %s", speciesType),
		ConfidencePct: confidence * 100,
		ThreatLabel:   ThreatLabel(confidence),
		DistanceLabel: distanceLabel,
		Mode:          strings.ToUpper(string(mode)),
		Bars:          BarsFor(mode, confidence),
		RawJSON:       string(raw),
	}

	p.history.Add(species, confidence)
	p.feed.Success(fmt.Sprintf("SPECIES IDENTIFIED: %s", state.Species))
	p.feed.Success(fmt.Sprintf("CONFIDENCE: %.1f%%  DISTANCE: %s", confidence*100, distanceLog))

	return state
}
