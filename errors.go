package promise

import "fmt"

// InvalidStateError reports an attempt to settle, or merge observers into, a
// promise that has already left the pending state. It signals a programming
// error on the producer side and is returned synchronously to the offending
// caller, never converted into a rejection.
type InvalidStateError struct {
	// Op is the operation that was attempted: "fulfill", "reject" or "become".
	Op string

	// State is the terminal state the promise was already in.
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("promise: %s on %s promise", e.Op, e.State)
}

// PanicError wraps a value recovered from a panicking handler. The derived
// promise rejects with it, so a panic inside a handler behaves exactly like
// the handler returning Err with the same value.
type PanicError struct {
	v any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("promise: handler panicked: %v", e.v)
}

// V returns the original panic value.
func (e *PanicError) V() any {
	return e.v
}

// Unwrap exposes the panic value when it is itself an error, so errors.Is
// and errors.As see through the wrapper.
func (e *PanicError) Unwrap() error {
	err, _ := e.v.(error)
	return err
}
