package audio

import (
	"math"
	"testing"
)

func TestSawStaysInsideUnitRange(t *testing.T) {
	freqs := []float64{27.5, 220, 440, 4186}
	for _, freq := range freqs {
		for i := 0; i < 10000; i++ {
			v := saw(float64(i)*secPerSample, freq)
			if math.Abs(v) >= 1 {
				t.Fatalf("saw(%v, %v) = %v, out of (-1,1)", float64(i)*secPerSample, freq, v)
			}
		}
	}
}

func TestSawIsPeriodic(t *testing.T) {
	freq := 440.0
	for i := 0; i < 100; i++ {
		tm := float64(i) * secPerSample
		a := saw(tm, freq)
		b := saw(tm+1/freq, freq)
		if math.Abs(a-b) > 1e-6 {
			t.Fatalf("saw not periodic at t=%v: %v vs %v", tm, a, b)
		}
	}
}

func TestSawBankBounded(t *testing.T) {
	// 2*detuneRange+1 oscillators each strictly inside (-1,1)
	bound := float64(2*detuneRange+1) / oscAtten
	freqs := []float64{55, 440, 880}
	for _, freq := range freqs {
		for i := 0; i < 10000; i++ {
			v := sawBank(float64(i)*secPerSample, freq)
			if math.Abs(v) > bound {
				t.Fatalf("sawBank(%v, %v) = %v, beyond %v", float64(i)*secPerSample, freq, v, bound)
			}
		}
	}
}
