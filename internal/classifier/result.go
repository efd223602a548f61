package classifier

// Result is the classification outcome for one scan, as returned by the
// remote service or substituted from the demo table.
type Result struct {
	Species    string   `json:"species"`
	Type       string   `json:"type"`
	Confidence float64  `json:"confidence"`
	Distance   *float64 `json:"distance,omitempty"`
}

// DistanceMeters returns the distance value and whether it is present.
func (r *Result) DistanceMeters() (float64, bool) {
	if r.Distance == nil {
		return 0, false
	}
	return *r.Distance, true
}

func distancePtr(v float64) *float64 { return &v }
