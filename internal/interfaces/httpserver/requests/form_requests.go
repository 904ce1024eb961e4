package requests

// SubmitRequest is the browser-side submission of the dynamic form:
// current field values keyed by declared name, slider positions for range
// fields, and the requested generation count.
type SubmitRequest struct {
	Values  map[string]any     `json:"values"`
	Sliders map[string]float64 `json:"sliders"`
	Count   int                `json:"count"`
}
