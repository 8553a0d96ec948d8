package audio

// ----- ADSR ----- //

const (
	stageOff = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

type adsrParams struct {
	attack  float64 // sec
	decay   float64 // sec
	sustain float64 // 0-1
	release float64 // sec
}

var defaultADSR = adsrParams{
	attack:  0.01,
	decay:   0.1,
	sustain: 0.8,
	release: 0.5,
}

/*
  1 +    x
    |   / \
  s +  /   x------x
    | /            \
  0 +-+----+------+--+--
    |a|d   |      |r |
*/
type adsr struct {
	attack  float64 // sec
	decay   float64 // sec
	sustain float64 // 0-1
	release float64 // sec
	stage   int
	level   float64 // 0-1
}

func (a *adsr) setParams(p *adsrParams) {
	a.attack = p.attack
	a.decay = p.decay
	a.sustain = p.sustain
	a.release = p.release
}

// noteOn restarts the attack ramp from the current level. The level is
// deliberately not reset, so retriggering a still-sounding note ramps up from
// where it is instead of clicking back to zero.
func (a *adsr) noteOn() {
	a.stage = stageAttack
}

// noteOff forces release from any stage, including mid-attack.
func (a *adsr) noteOff() {
	a.stage = stageRelease
}

// step advances the envelope by one sample. Linear ramps; all levels clamped.
func (a *adsr) step() {
	switch a.stage {
	case stageAttack:
		a.level += 1.0 / (a.attack * sampleRate)
		if a.level >= 1.0 {
			a.level = 1.0
			a.stage = stageDecay
		}
	case stageDecay:
		a.level -= (1.0 - a.sustain) / (a.decay * sampleRate)
		if a.level <= a.sustain {
			a.level = a.sustain
			a.stage = stageSustain
		}
	case stageSustain:
		// holds until noteOff
	case stageRelease:
		a.level -= a.sustain / (a.release * sampleRate)
		if a.level <= 0 {
			a.level = 0
			a.stage = stageOff
		}
	}
}
