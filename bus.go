package battery

// EventBus is the publish/subscribe capability the battery consumes.
// Implementations deliver synchronously on the caller's goroutine.
type EventBus interface {
	// Subscribe registers fn for topic and returns a handle that removes it.
	Subscribe(topic string, fn func(payload any)) Subscription
	// Current returns the last payload published on topic.
	Current(topic string) (any, bool)
}

// --- Handler registry ---

type busHandler struct {
	id uint32
	fn func(any)
}

// Bus is a topic-keyed handler registry. Publish records the payload as the
// topic's current value, then calls every handler registered at the time of
// the call, in registration order.
type Bus struct {
	handlers map[string][]busHandler
	current  map[string]any
	nextID   uint32
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]busHandler),
		current:  make(map[string]any),
	}
}

// Subscription allows removing a registered bus handler.
type Subscription struct {
	id    uint32
	bus   *Bus
	topic string
}

// Remove unregisters the handler so it no longer fires. Safe to call more
// than once and on the zero Subscription.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	s.bus.handlers[s.topic] = removeBusHandler(s.bus.handlers[s.topic], s.id)
}

func removeBusHandler(s []busHandler, id uint32) []busHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = busHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Subscribe registers fn for topic.
func (b *Bus) Subscribe(topic string, fn func(payload any)) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], busHandler{id: id, fn: fn})
	return Subscription{id: id, bus: b, topic: topic}
}

// Publish sets the current value of topic and dispatches payload.
// Handlers added during dispatch do not see this payload; handlers removed
// during dispatch still do.
func (b *Bus) Publish(topic string, payload any) {
	b.current[topic] = payload
	hs := b.handlers[topic]
	if len(hs) == 0 {
		return
	}
	snapshot := make([]busHandler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(payload)
	}
}

// Current returns the last payload published on topic.
func (b *Bus) Current(topic string) (any, bool) {
	v, ok := b.current[topic]
	return v, ok
}

// NumHandlers returns the number of handlers registered for topic.
func (b *Bus) NumHandlers(topic string) int {
	return len(b.handlers[topic])
}

// currentPage reads the current page identity from bus. Missing or non-string
// values yield "".
func currentPage(bus EventBus) string {
	v, ok := bus.Current(TopicPage)
	if !ok {
		return ""
	}
	page, _ := v.(string)
	return page
}

// pagePayload converts a bus payload to a page identity.
func pagePayload(payload any) string {
	page, _ := payload.(string)
	return page
}
