package audio

// ----- Reverb ----- //

const (
	reverbSeconds  = 2
	reverbFeedback = 0.5 // must stay below 1 or the tail never decays
)

// reverb is a single-tap recirculating delay. The line stores the already
// reverberated signal rather than the dry input, so every echo re-enters the
// loop: an impulse reappears at multiples of the line length, attenuated by
// feedback^n. There is no dry/wet blend; the output is always the wet sum.
type reverb struct {
	buf      []float64
	cursor   int
	feedback float64
}

func newReverb(length int, feedback float64) *reverb {
	return &reverb{
		buf:      make([]float64, length),
		feedback: feedback,
	}
}

func (r *reverb) step(in float64) float64 {
	out := in + r.buf[r.cursor]*r.feedback
	r.buf[r.cursor] = out
	r.cursor++
	if r.cursor >= len(r.buf) {
		r.cursor = 0
	}
	return out
}
