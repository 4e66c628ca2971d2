package events

// Bus is a single-threaded FIFO of pending events.
// Producers Emit; exactly one consumer per frame calls Drain.
type Bus struct {
	queue []Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Emit appends an event to the queue.
func (b *Bus) Emit(ev Event) {
	b.queue = append(b.queue, ev)
}

// Drain returns every buffered event in emission order and clears the queue.
// The returned slice is owned by the caller.
func (b *Bus) Drain() []Event {
	if len(b.queue) == 0 {
		return nil
	}
	out := b.queue
	b.queue = nil
	return out
}

// Len returns the number of buffered events.
func (b *Bus) Len() int {
	return len(b.queue)
}
