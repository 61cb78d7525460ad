package pcall

import (
	"fmt"

	"github.com/quillvm/quill/engine"
)

// CallError is a failed protected call reported through the typed call
// forms. Message is the single error value that the call left on the stack,
// already transformed by the error handler if one was installed.
type CallError struct {
	Status  engine.Status
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Outcome describes where a dynamic call's results live on the stack. On
// success the half-open range [First, First+Len) holds exactly the produced
// values; on failure it holds exactly one error value. The outcome becomes
// stale once the caller pops below First.
type Outcome struct {
	s        *engine.State
	first    int
	declared int
	returned int
	status   engine.Status
	message  string // set only for failures that never touched the stack
}

// OK reports whether the call succeeded.
func (o *Outcome) OK() bool { return o.status == engine.StatusOK }

// Status returns the call status.
func (o *Outcome) Status() engine.Status { return o.status }

// First returns the stack index of the first result.
func (o *Outcome) First() int { return o.first }

// Len returns the number of values in the result range.
func (o *Outcome) Len() int { return o.returned }

// Get reads the i-th result (0-based) without popping it.
func (o *Outcome) Get(i int) engine.Value {
	if i < 0 || i >= o.returned {
		panic(fmt.Sprintf("pcall: result index %d out of range (%d results)", i, o.returned))
	}
	return o.s.Get(o.first + i)
}

// Values copies the result range without popping it.
func (o *Outcome) Values() []engine.Value {
	vals := make([]engine.Value, o.returned)
	for i := range vals {
		vals[i] = o.s.Get(o.first + i)
	}
	return vals
}

// Value reads the i-th result converted to T.
func Value[T any](o *Outcome, i int) (T, error) {
	return engine.As[T](o.Get(i))
}

// Err returns nil for a successful call, otherwise a *CallError carrying
// the error value's text. The error value stays on the stack; use Release
// to reclaim it.
func (o *Outcome) Err() error {
	if o.status == engine.StatusOK {
		return nil
	}
	msg := o.message
	if o.returned > 0 {
		msg = o.s.Get(o.first).String()
	}
	return &CallError{Status: o.status, Message: msg}
}

// Release pops the result range off the stack. The outcome is stale
// afterwards.
func (o *Outcome) Release() {
	if o.s != nil && o.returned > 0 {
		o.s.SetTop(o.first - 1)
		o.returned = 0
	}
}
