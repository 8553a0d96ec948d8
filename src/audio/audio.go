package audio

import (
	"math"
)

const (
	sampleRate    = 44100
	channelNum    = 2
	blockSize     = 256 // frames per render callback
	maxNotes      = 128
	masterVolume  = 0.65
	eventQueueCap = 256
)

const secPerSample = 1.0 / sampleRate

// ----- Utility ----- //

func noteToFreq(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12)
}

// clampSample keeps degenerate values out of the reverb line; a single NaN
// written there would recirculate forever.
func clampSample(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// ----- Engine ----- //

// Engine renders blocks of interleaved stereo audio from note events.
// The render path is owned by a single device goroutine; input sources hand
// over control exclusively through Enqueue.
type Engine struct {
	voices *voiceTable
	reverb *reverb
	events *eventQueue
	t      float64
}

// NewEngine ...
func NewEngine() *Engine {
	return &Engine{
		voices: newVoiceTable(),
		reverb: newReverb(reverbSeconds*sampleRate, reverbFeedback),
		events: newEventQueue(eventQueueCap),
	}
}

// Enqueue hands a note event to the render loop. It never blocks; when the
// queue is full the oldest pending event is dropped instead.
func (e *Engine) Enqueue(ev NoteEvent) {
	e.events.push(ev)
}

// RenderBlock fills out with len(out)/channelNum frames of interleaved stereo.
// Pending events are applied once at the head of the block, so control latency
// is bounded by one block period. The loop never allocates.
func (e *Engine) RenderBlock(out []float32) {
	for {
		ev, ok := e.events.pop()
		if !ok {
			break
		}
		if ev.On {
			e.voices.noteOn(ev.Note)
		} else {
			e.voices.noteOff(ev.Note)
		}
	}
	for i := 0; i < len(out); i += channelNum {
		mixed, active := e.voices.renderSample(secPerSample)
		if active > 0 {
			mixed = mixed / float64(active) * masterVolume
		}
		mixed = e.reverb.step(clampSample(mixed))
		s := float32(mixed)
		out[i] = s
		out[i+1] = s
		e.t += secPerSample
	}
}
