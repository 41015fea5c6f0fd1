package host

import "sync"

// EventType classifies a cross-window notification.
type EventType int

const (
	// EventTabInjected fires after a tab lands in a window.
	EventTabInjected EventType = iota
	// EventTabRemoved fires after a tab is detached from a window.
	EventTabRemoved
	// EventWindowSpawned fires after a drag-out creates a new window.
	EventWindowSpawned
	// EventWindowClosed fires after a window is destroyed.
	EventWindowClosed
	// EventWindowFocused fires when a window is raised.
	EventWindowFocused
	// EventDropPreview marks Target as the live drop candidate for a drag
	// originating in Source. An empty Target clears the preview.
	EventDropPreview
)

// Event is one broker notification. Fields that do not apply to the type
// are left empty.
type Event struct {
	Type   EventType
	Source string
	Target string
	TabID  string
}

// Subscription is one subscriber's mailbox on the broker.
type Subscription struct {
	ch     chan Event
	closed bool
}

// Events returns the subscriber's receive channel.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Broker fans events out to subscribers. Delivery is non-blocking: a
// subscriber that stops draining its mailbox loses events rather than
// stalling the publisher, which keeps a stuck window from wedging a drag
// in another window.
type Broker struct {
	mu   sync.Mutex
	subs []*Subscription
}

// NewBroker builds an empty broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe registers a mailbox holding up to buffer pending events.
func (b *Broker) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	s := &Subscription{ch: make(chan Event, buffer)}
	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	return s
}

// Unsubscribe removes the mailbox and closes its channel.
func (b *Broker) Unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.closed {
		return
	}
	for i, sub := range b.subs {
		if sub == s {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	s.closed = true
	close(s.ch)
}

// Publish delivers the event to every current subscriber.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		select {
		case s.ch <- e:
		default:
		}
	}
}
