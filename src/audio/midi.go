package audio

import (
	"context"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ----- MIDI ----- //

// RunMidi opens the first MIDI IN port and feeds note events to emit until
// ctx is cancelled. A missing port is not fatal; the synth stays playable
// from the keyboard.
func RunMidi(ctx context.Context, emit func(NoteEvent)) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return err
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}()
	ins, err := drv.Ins()
	if err != nil {
		return err
	}
	log.Printf("MIDI IN: %v\n", ins)
	if len(ins) == 0 {
		log.Println("WARN: MIDI IN not found")
		<-ctx.Done()
		return nil
	}
	in := ins[0]
	if err := in.Open(); err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("failed to close MIDI IN: %v\n", err)
		}
	}()
	log.Println("opened " + in.String())
	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		if ev, ok := parseMidiMessage(data); ok {
			emit(ev)
		}
	}); err != nil {
		return err
	}
	defer func() {
		log.Println("stop listening MIDI IN...")
		if err := in.StopListening(); err != nil {
			log.Printf("failed to stop listening: %v\n", err)
		}
	}()
	log.Println("start listening MIDI IN...")
	<-ctx.Done()
	return nil
}

// parseMidiMessage maps channel voice messages to note events. A note-on
// with velocity 0 is a note-off in disguise.
func parseMidiMessage(data []byte) (NoteEvent, bool) {
	if len(data) < 3 {
		return NoteEvent{}, false
	}
	switch {
	case data[0]>>4 == 8 || (data[0]>>4 == 9 && data[2] == 0):
		return NoteEvent{Note: int(data[1]), On: false}, true
	case data[0]>>4 == 9:
		return NoteEvent{Note: int(data[1]), On: true}, true
	}
	return NoteEvent{}, false
}
