package promise

// Subscription is the opaque handle returned by Subscribe. Unsubscribe is
// idempotent: calling it twice, or after the observer has already fired, is
// a no-op.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the observer from its promise, if it is still
// registered.
func (s *Subscription) Unsubscribe() {
	s.cancel()
}

// entry is one registered observer. Removed entries stay in place as
// tombstones so removal never shifts indices under an in-progress snapshot.
type entry[T any] struct {
	obs     Observer[T]
	removed bool
}

// registry is the insertion-ordered observer list owned by a promise. All
// methods must be called with the owning promise's lock held.
type registry[T any] struct {
	entries []*entry[T]
}

func (r *registry[T]) add(obs Observer[T]) *entry[T] {
	e := &entry[T]{obs: obs}
	r.entries = append(r.entries, e)
	return e
}

func (r *registry[T]) remove(e *entry[T]) {
	e.removed = true
}

// snapshot returns the live observers in registration order. Settlement
// iterates over this copy, so observers added or removed by handler side
// effects during notification cannot corrupt or skip entries.
func (r *registry[T]) snapshot() []Observer[T] {
	observers := make([]Observer[T], 0, len(r.entries))
	for _, e := range r.entries {
		if e.removed {
			continue
		}
		observers = append(observers, e.obs)
	}
	return observers
}

func (r *registry[T]) clear() {
	r.entries = nil
}
