package studio

// MinGapPercent is the smallest allowed distance between the trim bounds.
const MinGapPercent = 5.0

// TrimWindow is a user-adjustable start/end percentage pair over a clip's
// timeline. Invariant: 0 <= Start <= End-MinGapPercent, End <= 100.
// Adjustments are pure value transitions; an out-of-range request is clamped,
// never an error.
type TrimWindow struct {
	StartFraction float64 `json:"start_fraction"`
	EndFraction   float64 `json:"end_fraction"`
}

// NewTrimWindow returns the full-span window.
func NewTrimWindow() TrimWindow {
	return TrimWindow{StartFraction: 0, EndFraction: 100}
}

// SetStart moves the start bound, clamped to [0, End-MinGapPercent].
func (w TrimWindow) SetStart(v float64) TrimWindow {
	if max := w.EndFraction - MinGapPercent; v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	w.StartFraction = v
	return w
}

// SetEnd moves the end bound, clamped to [Start+MinGapPercent, 100].
func (w TrimWindow) SetEnd(v float64) TrimWindow {
	if min := w.StartFraction + MinGapPercent; v < min {
		v = min
	}
	if v > 100 {
		v = 100
	}
	w.EndFraction = v
	return w
}

// Normalize re-applies the clamping rules to both bounds. Used at save time
// as defense in depth; a well-formed window passes through unchanged.
func (w TrimWindow) Normalize() TrimWindow {
	out := NewTrimWindow()
	out = out.SetEnd(w.EndFraction)
	out = out.SetStart(w.StartFraction)
	return out
}

// Resolve converts the window into absolute trim bounds in seconds over a
// clip of the given duration.
func (w TrimWindow) Resolve(durationSeconds int) (start, end float64) {
	d := float64(durationSeconds)
	return w.StartFraction / 100 * d, w.EndFraction / 100 * d
}
