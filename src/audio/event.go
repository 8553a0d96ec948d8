package audio

// ----- Note Event ----- //

// NoteEvent is the unit of control flow from input sources to the render loop.
type NoteEvent struct {
	Note int
	On   bool
}

// eventQueue is a bounded queue between the input goroutine and the render
// callback. push never blocks: on overflow the oldest pending event is
// dropped, trading a stale event for a bounded render path. Events from one
// producer come out in FIFO order.
type eventQueue struct {
	ch chan NoteEvent
}

func newEventQueue(size int) *eventQueue {
	return &eventQueue{ch: make(chan NoteEvent, size)}
}

func (q *eventQueue) push(ev NoteEvent) {
	for {
		select {
		case q.ch <- ev:
			return
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

func (q *eventQueue) pop() (NoteEvent, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return NoteEvent{}, false
	}
}
