package audio

import "math"

// ----- OSC ----- //

const (
	detuneRange = 13    // detuned copies at -detuneRange..detuneRange
	detuneStep  = 0.005 // Hz between neighbouring copies
	satGain     = 6.0
	oscAtten    = 121.0 // loudness trim; intentionally not the oscillator count
)

// saw returns a saturated sawtooth sample at time t for frequency freq.
// The raw saw is in [-1,1]; tanh soft-clips it for warmth and bounds the
// result strictly inside (-1,1) for any finite input.
func saw(t, freq float64) float64 {
	raw := 2.0 * (t*freq - math.Floor(t*freq+0.5))
	return math.Tanh(raw * satGain)
}

// sawBank sums detuned copies of the saw around freq. The slight detune makes
// the copies beat against each other, which reads as thickness.
func sawBank(t, freq float64) float64 {
	sample := 0.0
	for k := -detuneRange; k <= detuneRange; k++ {
		sample += saw(t, freq+float64(k)*detuneStep)
	}
	return sample / oscAtten
}
