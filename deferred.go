package promise

// Deferred is the producer handle of a pending promise. The consumer-facing
// Promise has no settlement methods, so only the holder of the Deferred can
// fulfill or reject it, each at most once.
//
// A Deferred also implements Observer, so it can terminate any upstream
// single-value source: OnNext stages the value, OnCompleted fulfills with it
// and OnError rejects.
type Deferred[T any] struct {
	p      *Promise[T]
	staged T
}

// Defer returns a new pending promise together with its producer handle.
func Defer[T any]() *Deferred[T] {
	return &Deferred[T]{p: newPending[T]()}
}

// Promise returns the consumer side of the deferred.
func (d *Deferred[T]) Promise() *Promise[T] {
	return d.p
}

// Fulfill settles the promise with value. It fails with *InvalidStateError
// if the promise has already settled.
func (d *Deferred[T]) Fulfill(value T) error {
	return d.p.fulfill(value)
}

// Reject settles the promise with reason. It fails with *InvalidStateError
// if the promise has already settled.
func (d *Deferred[T]) Reject(reason error) error {
	return d.p.reject(reason)
}

// OnNext stages the upstream value until OnCompleted arrives.
func (d *Deferred[T]) OnNext(value T) {
	d.staged = value
}

// OnCompleted fulfills the promise with the staged value. An upstream that
// notifies more than once violates the single-value contract; that is a
// programming error, so the resulting *InvalidStateError is raised as a
// panic rather than swallowed.
func (d *Deferred[T]) OnCompleted() {
	if err := d.p.fulfill(d.staged); err != nil {
		panic(err)
	}
}

// OnError rejects the promise with the upstream reason. Like OnCompleted, a
// duplicate notification panics with *InvalidStateError.
func (d *Deferred[T]) OnError(reason error) {
	if err := d.p.reject(reason); err != nil {
		panic(err)
	}
}

// Resolved returns a promise that has already fulfilled with value.
func Resolved[T any](value T) *Promise[T] {
	return &Promise[T]{state: StateFulfilled, value: value}
}

// Rejected returns a promise that has already rejected with reason.
func Rejected[T any](reason error) *Promise[T] {
	return &Promise[T]{state: StateRejected, reason: reason}
}

// New runs producer on its own goroutine with the settlement functions of a
// fresh deferred and immediately returns the consumer side. It is a
// convenience for the common produce-in-background pattern; the producer is
// expected to call exactly one of the two functions.
func New[T any](producer func(fulfill func(T) error, reject func(error) error)) *Promise[T] {
	d := Defer[T]()

	go producer(d.Fulfill, d.Reject)

	return d.p
}
