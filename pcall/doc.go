// Package pcall is the protected call boundary between host code and the
// engine. A [Function] wraps a callable held by an engine registry
// reference; invoking it guarantees that no failure crosses back to the
// caller as a panic: interpreter-raised errors, faults in the error handler,
// and panics raised by host functions running underneath the call all arrive
// as a non-ok [Outcome] (or as an error from the typed call forms) with
// exactly one error value on the stack.
//
// # Calling
//
//	f := pcall.New(ref)
//	out := f.Call(2, 3)        // dynamic: however many results the callable produces
//	sum, err := pcall.Call1[int](f, 2, 3)
//	a, b, err := pcall.Call2[int, int](f)
//	err := f.CallVoid()
//
// A dynamic call leaves its results on the stack, described by the returned
// [Outcome]; call [Outcome.Release] to reclaim them. The typed forms pop and
// convert their results before returning.
//
// # Error Handlers
//
// An optional error handler (any engine callable taking the error message
// and returning the transformed error value) can be installed per Function
// via its Handler field, or process-wide with [SetDefaultHandler]. The
// default is captured once when the Function is constructed.
package pcall
