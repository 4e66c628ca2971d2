package events

// Handler processes specific event types.
type Handler interface {
	// HandleEvent processes a single event. Called synchronously during dispatch.
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler processes.
	EventTypes() []Type
}

// HandlerFunc wraps a function as a Handler for a fixed set of types.
type HandlerFunc struct {
	Types []Type
	Fn    func(Event)
}

// HandleEvent calls h.Fn.
func (h HandlerFunc) HandleEvent(ev Event) { h.Fn(ev) }

// EventTypes returns h.Types.
func (h HandlerFunc) EventTypes() []Type { return h.Types }

// Router dispatches drained events to registered handlers.
//
// Handlers for the same type run in registration order. Events emitted by a
// handler while dispatching land back on the bus and are delivered by the
// next drain pass of the same Dispatch call.
type Router struct {
	handlers map[Type][]Handler
	bus      *Bus
}

// maxDispatchPasses bounds handler feedback loops within a single frame.
const maxDispatchPasses = 8

// NewRouter creates a router attached to the given bus.
func NewRouter(bus *Bus) *Router {
	return &Router{
		handlers: make(map[Type][]Handler),
		bus:      bus,
	}
}

// Register adds a handler for its declared event types.
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Dispatch drains the bus until it is empty and routes every event.
// Returns the number of events delivered.
func (r *Router) Dispatch() int {
	delivered := 0
	for pass := 0; pass < maxDispatchPasses; pass++ {
		batch := r.bus.Drain()
		if len(batch) == 0 {
			break
		}
		for _, ev := range batch {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ev)
			}
			delivered++
		}
	}
	return delivered
}
