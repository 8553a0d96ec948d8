package audio

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/term"
)

// ----- Keyboard ----- //

// FL Studio layout: the home row plays upward from A3, the bottom row fills
// the octave below, Q doubles as C5.
var keyNoteMap = map[byte]int{
	'A': 57, 'W': 58, 'S': 59, 'E': 60, 'D': 61, 'F': 62, 'T': 63, 'G': 64,
	'Y': 65, 'H': 66, 'U': 67, 'J': 68, 'K': 69, 'O': 70, 'L': 71, 'P': 72,
	';': 73, '\'': 74, 'Q': 72, 'Z': 48, 'X': 50, 'C': 52, 'V': 53, 'B': 55, 'N': 57,
}

const keyEscape = 27

// Terminals report presses but never releases. A held key keeps its note
// alive through key repeat; once repeats stop the note is released after
// this timeout. Pressing a different key releases the others immediately.
const keyHoldTimeout = 200 * time.Millisecond

// RunKeyboard puts the terminal into raw mode and feeds mapped key presses to
// emit until ESC is pressed or ctx is cancelled. The previous terminal state
// is restored on every return path.
func RunKeyboard(ctx context.Context, emit func(NoteEvent)) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		if err := term.Restore(fd, oldState); err != nil {
			log.Printf("failed to restore terminal: %v\n", err)
		}
	}()

	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	held := make(map[int]time.Time)
	ticker := time.NewTicker(keyHoldTimeout / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("RunKeyboard() interrupted.")
			return nil
		case now := <-ticker.C:
			for note, last := range held {
				if now.Sub(last) > keyHoldTimeout {
					emit(NoteEvent{Note: note, On: false})
					delete(held, note)
				}
			}
		case c, ok := <-keys:
			if !ok {
				return nil
			}
			if c == keyEscape {
				log.Println("ESC pressed, quitting.")
				return nil
			}
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			note, mapped := keyNoteMap[c]
			if !mapped {
				continue
			}
			for other := range held {
				if other != note {
					emit(NoteEvent{Note: other, On: false})
					delete(held, other)
				}
			}
			emit(NoteEvent{Note: note, On: true})
			held[note] = time.Now()
		}
	}
}
