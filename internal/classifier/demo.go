package classifier

import "github.com/wlds/wlds-go/internal/session"

// demoResults is the fixed, mode-keyed fallback table used whenever the
// remote classifier is unreachable. The panel must always produce a
// displayable result, so transport failures downgrade to these values
// instead of surfacing an error.
var demoResults = map[session.Mode]Result{
	session.ModeAudio:  {Species: "Indian Sparrow", Type: "BIRD", Confidence: 0.87, Distance: distancePtr(18.4)},
	session.ModeImage:  {Species: "Common Myna", Type: "BIRD", Confidence: 0.91, Distance: distancePtr(22.0)},
	session.ModeFusion: {Species: "Indian Peacock", Type: "BIRD", Confidence: 0.95, Distance: distancePtr(35.6)},
}

// DemoResult returns the canned result for the given mode. Unknown modes
// fall back to the audio entry.
func DemoResult(mode session.Mode) Result {
	if r, ok := demoResults[mode]; ok {
		return r
	}
	return demoResults[session.ModeAudio]
}
