package promise

// Then returns a promise settled by running the matching handler against
// this promise's outcome: onFulfilled against the value, onRejected against
// the reason. Either handler may be nil, in which case that side of the
// outcome is forwarded unchanged. A handler's plain return value fulfills
// the derived promise, an error result (or a panic) rejects it, and a
// returned promise makes the derived promise adopt that promise's eventual
// state. Then never mutates the receiver and never fails synchronously on
// account of a handler.
func (p *Promise[T]) Then(onFulfilled FulfillHandler[T], onRejected RejectHandler[T]) *Promise[T] {
	return p.chain(onFulfilled, onRejected, nil)
}

// Fail is shorthand for Then(nil, onRejected).
func (p *Promise[T]) Fail(onRejected RejectHandler[T]) *Promise[T] {
	return p.chain(nil, onRejected, nil)
}

// Fin returns a promise that forwards this promise's outcome unchanged,
// value or error, after running onFinally. If onFinally fails, by panicking
// or returning an error result, the derived promise rejects with that error
// instead. If onFinally returns a promise, forwarding waits until it
// settles, and its rejection likewise takes precedence over the original
// outcome. Any other return value is discarded.
func (p *Promise[T]) Fin(onFinally FinallyHandler[T]) *Promise[T] {
	return p.chain(nil, nil, onFinally)
}

func (p *Promise[T]) chain(
	onFulfilled FulfillHandler[T],
	onRejected RejectHandler[T],
	onFinally FinallyHandler[T],
) *Promise[T] {
	derived := newPending[T]()

	// Subscribe replays synchronously when p has already settled, which is
	// what guarantees a handler attached after settlement still fires
	// exactly once.
	p.Subscribe(&chainObserver[T]{
		derived:     derived,
		onFulfilled: onFulfilled,
		onRejected:  onRejected,
		onFinally:   onFinally,
	})

	return derived
}

// chainObserver adapts one Then/Fail/Fin registration into the single-value
// observer protocol and drives the derived promise from the source outcome.
type chainObserver[T any] struct {
	derived     *Promise[T]
	onFulfilled FulfillHandler[T]
	onRejected  RejectHandler[T]
	onFinally   FinallyHandler[T]

	// value is staged by OnNext and consumed by OnCompleted.
	value T
}

func (o *chainObserver[T]) OnNext(value T) {
	o.value = value
}

func (o *chainObserver[T]) OnCompleted() {
	o.settleAfterFinally(func() {
		if o.onFulfilled == nil {
			_ = o.derived.fulfill(o.value)
			return
		}

		evalResult(o.derived, invoke(func() Result[T] { return o.onFulfilled(o.value) }))
	})
}

func (o *chainObserver[T]) OnError(reason error) {
	o.settleAfterFinally(func() {
		if o.onRejected == nil {
			_ = o.derived.reject(reason)
			return
		}

		evalResult(o.derived, invoke(func() Result[T] { return o.onRejected(reason) }))
	})
}

// settleAfterFinally runs the finally handler first, against the unchanged
// captured outcome, then lets settle forward or transform it. A failing
// finally handler rejects the derived promise instead; a promise-valued
// finally result gates the settlement until that promise settles.
func (o *chainObserver[T]) settleAfterFinally(settle func()) {
	if o.onFinally == nil {
		settle()
		return
	}

	res := invoke(func() Result[T] { return o.onFinally() })
	if res == nil {
		settle()
		return
	}

	if err := res.Err(); err != nil {
		_ = o.derived.reject(err)
		return
	}

	if followed := res.promise(); followed != nil {
		followed.Subscribe(&finallyGate[T]{derived: o.derived, settle: settle})
		return
	}

	settle()
}

// finallyGate holds a settlement back until the promise returned by a
// finally handler settles. Its rejection overrides the original outcome;
// its value is discarded.
type finallyGate[T any] struct {
	derived *Promise[T]
	settle  func()
}

func (g *finallyGate[T]) OnNext(T) {}

func (g *finallyGate[T]) OnCompleted() {
	g.settle()
}

func (g *finallyGate[T]) OnError(reason error) {
	_ = g.derived.reject(reason)
}

// invoke runs a handler, converting a panic into an error result so a
// handler failure can never surface to the caller that settled the source.
func invoke[T any](call func() Result[T]) (res Result[T]) {
	defer func() {
		if v := recover(); v != nil {
			res = Err[T](&PanicError{v: v})
		}
	}()

	return call()
}

// evalResult drives the derived promise from a classified handler outcome:
// a forwarded promise adopts the derived promise's waiters, an error result
// rejects, anything else fulfills.
func evalResult[T any](derived *Promise[T], res Result[T]) {
	if res == nil {
		var zero T
		_ = derived.fulfill(zero)
		return
	}

	if followed := res.promise(); followed != nil {
		_ = followed.become(derived)
		return
	}

	if err := res.Err(); err != nil {
		_ = derived.reject(err)
		return
	}

	_ = derived.fulfill(res.Val())
}
