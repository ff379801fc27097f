// Package promise implements a single-settlement promise: a container for a
// value or error that becomes available at an unknown future time, with
// handler chaining instead of nested callbacks.
//
// A promise is created pending, through Defer, and settles exactly once,
// through the producer handle's Fulfill or Reject. A second settlement
// attempt fails with *InvalidStateError. Consumers chain handlers with Then,
// Fail and Fin; every call returns a new derived promise and leaves the
// source untouched, so any number of independent chains can hang off one
// promise.
//
// Handlers fire exactly once each, in registration order. A handler attached
// after settlement is replayed the stored outcome synchronously, so ordering
// and exactly-once delivery hold no matter when a chain is built. A handler
// returning a plain value fulfills its derived promise; returning Err, or
// panicking, rejects it; returning Follow(q) makes the derived promise adopt
// q's eventual state, which is how nested promises flatten into a single
// chain.
//
// Fin runs its handler on any settlement and forwards the original outcome
// unchanged, unless the handler itself fails, in which case the failure wins.
//
// Settling from a different goroutine than the one attaching handlers is
// safe; delivery is push-only and runs on the settler's goroutine. There is
// no cancellation and no timeout: a promise either settles or stays pending
// forever.
//
// The promise sits on a minimal single-value publish/subscribe surface, the
// Observer interface, usable in both directions: Subscribe emits exactly one
// value-then-completed or error notification per subscriber, and a Deferred
// is itself an Observer, so it can capture the single notification of any
// upstream source.
package promise
