package engine

// Predictor is the 1-bit branch direction predictor of spec.md §4.F,
// keyed by instruction index rather than a raw PC (the engine never sees
// byte addresses). Unseen branches default to not-taken.
type Predictor struct {
	taken map[int]bool
}

// NewPredictor returns a predictor with no branch history.
func NewPredictor() *Predictor {
	return &Predictor{taken: make(map[int]bool)}
}

// Predict returns the predicted direction for the branch at instrIndex.
func (p *Predictor) Predict(instrIndex int) bool {
	return p.taken[instrIndex]
}

// Update records the actual outcome of the branch at instrIndex,
// regardless of what was predicted.
func (p *Predictor) Update(instrIndex int, actual bool) {
	p.taken[instrIndex] = actual
}

// Reset clears all branch history.
func (p *Predictor) Reset() {
	p.taken = make(map[int]bool)
}
