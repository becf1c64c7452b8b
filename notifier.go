package dials

import "slices"

// Subscription identifies a registered callback. Pass it to Off, or call
// Remove directly.
type Subscription struct {
	id    uint32
	event EventType
	owner remover
}

type remover interface {
	remove(id uint32)
}

// Event returns the kind of notification the subscription listens to.
func (s Subscription) Event() EventType { return s.event }

// Remove unregisters the callback. Removing twice, or removing the zero
// Subscription, is a no-op.
func (s Subscription) Remove() {
	if s.owner == nil {
		return
	}
	s.owner.remove(s.id)
}

type handler[E any] struct {
	id uint32
	fn func(E)
}

// notifier broadcasts events to subscribers synchronously, in registration
// order. The handler slice is never mutated in place, so a pass that is
// already running keeps its own view when callbacks unsubscribe.
type notifier[E any] struct {
	event    EventType
	handlers []handler[E]
	nextID   uint32
}

func newNotifier[E any](event EventType) *notifier[E] {
	return &notifier[E]{event: event}
}

func (n *notifier[E]) add(fn func(E)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	n.nextID++
	id := n.nextID
	next := make([]handler[E], len(n.handlers), len(n.handlers)+1)
	copy(next, n.handlers)
	n.handlers = append(next, handler[E]{id: id, fn: fn})
	return Subscription{id: id, event: n.event, owner: n}
}

func (n *notifier[E]) remove(id uint32) {
	i := slices.IndexFunc(n.handlers, func(h handler[E]) bool { return h.id == id })
	if i < 0 {
		return
	}
	n.handlers = slices.Delete(slices.Clone(n.handlers), i, i+1)
}

func (n *notifier[E]) emit(e E) {
	for _, h := range n.handlers {
		h.fn(e)
	}
}

func (n *notifier[E]) clear() {
	n.handlers = nil
}

func (n *notifier[E]) len() int {
	return len(n.handlers)
}
