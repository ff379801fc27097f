package promise

// State describes the settlement state of a promise. A promise starts out
// pending and moves exactly once to either fulfilled or rejected; there is
// no transition out of a terminal state.
type State string

const (
	StatePending   = State("pending")
	StateFulfilled = State("fulfilled")
	StateRejected  = State("rejected")
)

// FulfillHandler consumes the value of a fulfilled promise and produces the
// outcome of the derived promise. Returning nil fulfills the derived promise
// with the zero value of T.
type FulfillHandler[T any] func(value T) Result[T]

// RejectHandler consumes the reason of a rejected promise. Returning a plain
// value (or nil) recovers the chain: the derived promise fulfills.
type RejectHandler[T any] func(reason error) Result[T]

// FinallyHandler runs on any settlement, before the fulfill/reject handler
// logic. Its return value is discarded unless it is an error result, which
// rejects the derived promise instead of forwarding the original outcome,
// or a promise, which the settlement then waits for.
type FinallyHandler[T any] func() Result[T]

// Observer is the single-value publish/subscribe contract a promise sits on
// top of. A fulfilled promise emits the value-then-completed sequence; a
// rejected promise emits a single error. Every subscriber receives exactly
// one such notification.
type Observer[T any] interface {
	OnNext(value T)
	OnCompleted()
	OnError(reason error)
}
