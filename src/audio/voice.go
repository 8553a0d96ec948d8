package audio

// ----- Voice ----- //

// voice is one sounding note.
type voice struct {
	note    int
	time    float64 // sec since last retrigger, drives oscillator phase
	env     adsr
	keyDown bool
}

// voiceTable holds every voice in a dense array indexed by note, so the
// render loop never hashes, allocates, or iterates in nondeterministic order.
// Voices are never erased; an off voice just skips the mix.
type voiceTable struct {
	voices [maxNotes]voice
}

func newVoiceTable() *voiceTable {
	t := &voiceTable{}
	for i := range t.voices {
		t.voices[i].note = i
		t.voices[i].env.setParams(&defaultADSR)
	}
	return t
}

func (vt *voiceTable) noteOn(note int) {
	if note < 0 || note >= maxNotes {
		return
	}
	v := &vt.voices[note]
	v.time = 0
	v.keyDown = true
	v.env.noteOn()
}

func (vt *voiceTable) noteOff(note int) {
	if note < 0 || note >= maxNotes {
		return
	}
	v := &vt.voices[note]
	v.keyDown = false
	v.env.noteOff()
}

// renderSample advances every sounding voice by one sample and returns the
// raw mix plus the number of voices that were sounding when the sample began.
func (vt *voiceTable) renderSample(dt float64) (float64, int) {
	mixed := 0.0
	active := 0
	for i := range vt.voices {
		v := &vt.voices[i]
		if v.env.stage == stageOff {
			continue
		}
		active++
		v.time += dt
		v.env.step()
		mixed += sawBank(v.time, noteToFreq(v.note)) * v.env.level
	}
	return mixed, active
}
