package promise

import "sync"

// Promise represents the eventual, one-time outcome of an asynchronous
// operation. Consumers attach handlers with Then, Fail and Fin, or subscribe
// an Observer directly; producers settle it through the Deferred that created
// it. A Promise settles at most once and every observer fires exactly once,
// in registration order, whether it attached before or after settlement.
type Promise[T any] struct {
	mu        sync.Mutex
	state     State
	value     T
	reason    error
	observers registry[T]
}

func newPending[T any]() *Promise[T] {
	return &Promise[T]{state: StatePending}
}

// State reports the current settlement state.
func (p *Promise[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Val returns the settled value. It is the zero value of T unless the
// promise has fulfilled.
func (p *Promise[T]) Val() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.value
}

// Err returns the settled reason. It is nil unless the promise has rejected.
func (p *Promise[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reason
}

// Subscribe registers obs for the promise's single settlement notification
// and returns its handle. If the promise has already settled, the stored
// outcome is replayed to obs synchronously before Subscribe returns, and the
// returned handle is inert.
func (p *Promise[T]) Subscribe(obs Observer[T]) *Subscription {
	p.mu.Lock()
	if p.state == StatePending {
		e := p.observers.add(obs)
		p.mu.Unlock()

		return &Subscription{cancel: func() { p.unsubscribe(e) }}
	}

	state, value, reason := p.state, p.value, p.reason
	p.mu.Unlock()

	switch state {
	case StateFulfilled:
		obs.OnNext(value)
		obs.OnCompleted()

	case StateRejected:
		obs.OnError(reason)
	}

	return &Subscription{cancel: func() {}}
}

func (p *Promise[T]) unsubscribe(e *entry[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.observers.remove(e)
}

// fulfill moves the promise to the fulfilled state and notifies, in
// registration order, every observer registered so far. The transition and
// the observer snapshot form one critical section, so settling from a
// different goroutine than the one attaching handlers is safe; notification
// itself runs outside the lock, so handlers may freely attach new observers
// or settle other promises.
func (p *Promise[T]) fulfill(value T) error {
	p.mu.Lock()
	if p.state != StatePending {
		state := p.state
		p.mu.Unlock()

		return &InvalidStateError{Op: "fulfill", State: state}
	}

	p.state = StateFulfilled
	p.value = value
	observers := p.observers.snapshot()
	p.observers.clear()
	p.mu.Unlock()

	for _, obs := range observers {
		obs.OnNext(value)
		obs.OnCompleted()
	}

	return nil
}

// reject is the symmetric counterpart of fulfill.
func (p *Promise[T]) reject(reason error) error {
	p.mu.Lock()
	if p.state != StatePending {
		state := p.state
		p.mu.Unlock()

		return &InvalidStateError{Op: "reject", State: state}
	}

	p.state = StateRejected
	p.reason = reason
	observers := p.observers.snapshot()
	p.observers.clear()
	p.mu.Unlock()

	for _, obs := range observers {
		obs.OnError(reason)
	}

	return nil
}

// become makes the still-pending derived promise adopt p's eventual outcome:
// once p settles, derived settles the same way, which fires every observer
// waiting on derived. It works whether p has already settled or settles
// later. Calling it with an already-settled adopter is a programming error
// and fails fast instead of silently dropping the adopter's waiters.
func (p *Promise[T]) become(derived *Promise[T]) error {
	derived.mu.Lock()
	if derived.state != StatePending {
		state := derived.state
		derived.mu.Unlock()

		return &InvalidStateError{Op: "become", State: state}
	}
	derived.mu.Unlock()

	p.Subscribe(&settleObserver[T]{target: derived})

	return nil
}

// settleObserver forwards the single pub/sub notification into a settlement
// of target.
type settleObserver[T any] struct {
	target *Promise[T]
	value  T
}

func (o *settleObserver[T]) OnNext(value T) {
	o.value = value
}

func (o *settleObserver[T]) OnCompleted() {
	_ = o.target.fulfill(o.value)
}

func (o *settleObserver[T]) OnError(reason error) {
	_ = o.target.reject(reason)
}
