package promise

import "fmt"

// Result is the classified outcome of a handler: a plain value, an error, or
// another promise the derived promise should defer to. Values are built with
// Val, Err, Follow or Empty; the type is sealed so classification stays a
// three-way switch.
type Result[T any] interface {
	Val() T
	Err() error
	State() State

	// promise returns the forwarded promise, or nil for value/error results.
	promise() *Promise[T]
}

// Empty returns a fulfilled result carrying the zero value of T.
func Empty[T any]() Result[T] {
	return valResult[T]{}
}

// Val returns a fulfilled result carrying val.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err returns an error result carrying err. A handler returning it rejects
// the derived promise, exactly as if the handler had panicked with err.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

// Follow returns a result that defers the derived promise to p: the derived
// promise adopts p's eventual state, whether p has already settled or not.
func Follow[T any](p *Promise[T]) Result[T] {
	return followResult[T]{p: p}
}

type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }
type followResult[T any] struct{ p *Promise[T] }

func (r valResult[T]) Val() T        { return r.val }
func (r errResult[T]) Val() (v T)    { return v }
func (r followResult[T]) Val() (v T) { return v }

func (r valResult[T]) Err() error    { return nil }
func (r errResult[T]) Err() error    { return r.err }
func (r followResult[T]) Err() error { return nil }

func (r valResult[T]) State() State    { return StateFulfilled }
func (r errResult[T]) State() State    { return StateRejected }
func (r followResult[T]) State() State { return StatePending }

func (r valResult[T]) promise() *Promise[T]    { return nil }
func (r errResult[T]) promise() *Promise[T]    { return nil }
func (r followResult[T]) promise() *Promise[T] { return r.p }

func (r valResult[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}

func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}

func (r followResult[T]) String() string {
	return "following"
}
